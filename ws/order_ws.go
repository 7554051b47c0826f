package ws

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/GEDDY90/wadoo-backend/events"
	"github.com/GEDDY90/wadoo-backend/pkg/resp"
	"github.com/GEDDY90/wadoo-backend/services"
	"github.com/GEDDY90/wadoo-backend/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// OrderStream serves the three realtime order feeds over websocket. Events
// come from the hub; each connection applies its own recipient filter before
// writing.
type OrderStream struct {
	Hub    *events.Hub
	Orders *services.OrderService
}

func NewOrderStream(hub *events.Hub, orders *services.OrderService) *OrderStream {
	return &OrderStream{Hub: hub, Orders: orders}
}

// GET /ws/orders/pending — restaurant owners; only their own restaurants'
// orders come through.
func (s *OrderStream) PendingOrders(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	s.stream(c, events.TopicPendingOrders, func(ev events.Event) bool {
		p, ok := ev.Payload.(events.PendingOrder)
		return ok && p.OwnerID == userID
	})
}

// GET /ws/orders/cooked — delivery drivers; every order ready for pickup.
func (s *OrderStream) CookedOrders(c *gin.Context) {
	s.stream(c, events.TopicCookedOrders, func(events.Event) bool { return true })
}

// GET /ws/orders/:id/updates — any party to the order; visibility is checked
// once at subscribe time.
func (s *OrderStream) OrderUpdates(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		resp.BadRequest(c, "invalid order id")
		return
	}
	orderID := uint(id)

	// Get applies the same CanView policy as the HTTP reads
	if _, err := s.Orders.Get(c.Request.Context(), utils.CurrentUser(c), orderID); err != nil {
		switch err {
		case services.ErrOrderNotFound:
			resp.NotFound(c, err.Error())
		case services.ErrNotAllowed:
			resp.Forbidden(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}

	s.stream(c, events.TopicOrderUpdates, func(ev events.Event) bool {
		p, ok := ev.Payload.(events.OrderUpdate)
		return ok && p.Order != nil && p.Order.ID == orderID
	})
}

// stream upgrades the connection, subscribes to the topic and writes every
// event passing the filter until either side goes away.
func (s *OrderStream) stream(c *gin.Context, topic string, keep func(events.Event) bool) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}
	defer conn.Close()

	ch, cancel := s.Hub.Subscribe(topic)
	defer cancel()

	// reader goroutine only detects the client closing; cancel unblocks the
	// writer loop by closing the channel
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	for ev := range ch {
		if !keep(ev) {
			continue
		}
		if err := conn.WriteJSON(ev); err != nil {
			log.Printf("ws write error: %v", err)
			return
		}
	}
}
