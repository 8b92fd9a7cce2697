package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/karan-monga/repsandrulers/internal/importer"
	"github.com/karan-monga/repsandrulers/internal/services"
	progressws "github.com/karan-monga/repsandrulers/internal/websocket"
	"github.com/karan-monga/repsandrulers/pkg/utils"
)

const maxImportSize = 10 << 20

type ImportHandler struct {
	importService *services.ImportService
	goalService   *services.GoalService
	hub           *progressws.Hub
	jwtSecret     string
}

func NewImportHandler(importService *services.ImportService, goalService *services.GoalService, hub *progressws.Hub, jwtSecret string) *ImportHandler {
	return &ImportHandler{importService: importService, goalService: goalService, hub: hub, jwtSecret: jwtSecret}
}

// Inspect returns the headers and row count of an uploaded file so the client
// can present column mapping choices.
func (h *ImportHandler) Inspect(c *fiber.Ctx) error {
	if _, err := currentUserID(c); err != nil {
		return unauthorized(c)
	}

	raw, err := readUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.importService.Inspect(raw)
	if err != nil {
		if errors.Is(err, importer.ErrEmptyFile) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "CSV file is empty"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to inspect file"})
	}
	return c.JSON(result)
}

// Import runs the pipeline. Validation errors come back as 422 with the full
// error list; a clean run returns the summary. Progress is streamed to the
// user's websocket connections as rows are written.
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	raw, err := readUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var mapping importer.ColumnMapping
	mappingJSON := c.FormValue("mapping")
	if mappingJSON == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing column mapping"})
	}
	if err := json.Unmarshal([]byte(mappingJSON), &mapping); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid column mapping"})
	}

	userKey := strconv.FormatInt(userID, 10)
	progress := func(done, total int) {
		h.hub.Publish(userKey, &progressws.Message{
			Type:  "import_progress",
			Done:  done,
			Total: total,
		})
	}

	summary, importErrs, err := h.importService.Run(c.Context(), userID, raw, mapping, progress)
	if err != nil {
		if errors.Is(err, importer.ErrEmptyFile) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "CSV file is empty"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to import file"})
	}
	if len(importErrs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"errors": importErrs})
	}

	h.hub.Publish(userKey, &progressws.Message{
		Type:     "import_complete",
		Imported: summary.Imported,
		Skipped:  summary.Skipped,
		Done:     summary.Total,
		Total:    summary.Total,
	})

	// Milestone state follows the latest weight, so re-check after each write.
	if err := h.goalService.EvaluateMilestones(c.Context(), userID); err != nil {
		log.Printf("evaluate milestones for user %d: %v", userID, err)
	}

	return c.JSON(summary)
}

func (h *ImportHandler) WebSocketAuth(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{"error": "WebSocket upgrade required"})
	}

	claims, err := h.parseWSClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	c.Locals("user_id", claims.UserID)
	return c.Next()
}

func (h *ImportHandler) HandleWebSocket(conn *websocket.Conn) {
	userID, _ := conn.Locals("user_id").(string)
	client := progressws.NewClient(h.hub, conn, userID)

	h.hub.Register(client)
	go client.WritePump()
	client.ReadPump()
}

func (h *ImportHandler) parseWSClaims(c *fiber.Ctx) (*utils.Claims, error) {
	tokenString := strings.TrimSpace(c.Query("token"))
	if tokenString == "" {
		authHeader := strings.TrimSpace(c.Get("Authorization"))
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
	}

	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	return utils.ValidateToken(tokenString, h.jwtSecret)
}

func readUpload(c *fiber.Ctx) (string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", errors.New("Missing file upload")
	}
	if fileHeader.Size > maxImportSize {
		return "", errors.New("File too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", errors.New("Failed to open upload")
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxImportSize))
	if err != nil {
		return "", errors.New("Failed to read upload")
	}
	return string(content), nil
}
