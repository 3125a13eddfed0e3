package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/Mihirannanayakkara/smart-agriguard-backend/models"
	"github.com/Mihirannanayakkara/smart-agriguard-backend/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // development only, restrict in production
	},
}

func sendJSON(conn *websocket.Conn, data interface{}) {
	msg, err := json.Marshal(data)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		log.Println("WebSocket send error:", err)
	}
}

// HandleInquiryWebSocket streams status updates for one inquiry to its
// owner or to staff. The token travels as a query parameter because
// browsers cannot set headers on websocket upgrades.
func HandleInquiryWebSocket(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		inquiryID := c.Param("id")
		token := c.Query("token")

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
			return
		}
		claims, err := utils.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		if !models.IsStaffRole(models.UserRole(claims.Role)) {
			var inquiry models.Inquiry
			if err := db.First(&inquiry, "id = ?", inquiryID).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"message": "Inquiry not found"})
				return
			}
			if inquiry.UserID.String() != claims.UserID {
				c.JSON(http.StatusForbidden, gin.H{"message": "You do not have permission to watch this inquiry"})
				return
			}
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("WebSocket upgrade failed:", err)
			return
		}
		log.Printf("Inquiry WS connected: inquiryID=%s, userID=%s\n", inquiryID, claims.UserID)

		H.Register(inquiryID, conn)
		sendJSON(conn, gin.H{"type": "connected", "message": "Connected to inquiry " + inquiryID})
	}
}

// HandleDashboardWebSocket streams inquiry-list-changed events to staff
// dashboards.
func HandleDashboardWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
			return
		}
		claims, err := utils.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}
		if !models.IsStaffRole(models.UserRole(claims.Role)) {
			c.JSON(http.StatusForbidden, gin.H{"message": "Staff only"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("WebSocket upgrade failed:", err)
			return
		}
		log.Printf("Dashboard WS connected: userID=%s\n", claims.UserID)

		H.RegisterGlobal(conn)
		sendJSON(conn, gin.H{"type": "connected", "message": "Connected to staff dashboard"})
	}
}
