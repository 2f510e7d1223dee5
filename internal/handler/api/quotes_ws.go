package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"StockSight/internal/domain/models"
	"StockSight/internal/service/metrics"
	"StockSight/internal/usecase"
	xhttp "StockSight/pkg/http"
	applogger "StockSight/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type streamMessage struct {
	Type  string        `json:"type"` // "quote" | "error"
	Quote *models.Quote `json:"quote,omitempty"`
	Error string        `json:"error,omitempty"`
}

// QuoteStreamHandler pushes a symbol's quote over a WebSocket every interval seconds.
type QuoteStreamHandler struct {
	l      *applogger.Logger
	stocks *usecase.StockUseCase
}

func NewQuoteStreamHandler(l *applogger.Logger, stocks *usecase.StockUseCase) *QuoteStreamHandler {
	metrics.Register()
	return &QuoteStreamHandler{l: l, stocks: stocks}
}

func (h *QuoteStreamHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/quotes/:symbol", h.Stream)
}

func (h *QuoteStreamHandler) Stream(c echo.Context) error {
	req := &models.QuoteStreamRequest{Interval: models.DefaultStreamInterval}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return invalid(c, "quote_stream", verr)
	}
	symbol := usecase.NormalizeSymbol(req.Symbol)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.l.Debug("websocket upgrade failed", applogger.Error(err))
		return nil
	}
	defer conn.Close()

	metrics.QuoteStreams.Inc()
	defer metrics.QuoteStreams.Dec()
	h.l.Debug("quote stream opened", applogger.String("symbol", symbol), applogger.Int("interval", req.Interval))

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()
	go h.readPump(conn, cancel)

	h.writePump(ctx, conn, symbol, time.Duration(req.Interval)*time.Second)
	h.l.Debug("quote stream closed", applogger.String("symbol", symbol))
	return nil
}

// readPump discards client frames and cancels the stream when the peer goes away.
func (h *QuoteStreamHandler) readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *QuoteStreamHandler) writePump(ctx context.Context, conn *websocket.Conn, symbol string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	if !h.push(ctx, conn, symbol) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ticker.C:
			if !h.push(ctx, conn, symbol) {
				return
			}
		}
	}
}

// push sends one quote or error frame. It returns false when the stream should end.
func (h *QuoteStreamHandler) push(ctx context.Context, conn *websocket.Conn, symbol string) bool {
	q, err := h.stocks.Quote(ctx, symbol)
	if err != nil && ctx.Err() != nil {
		return false
	}

	msg := streamMessage{Type: "quote", Quote: q}
	keepOpen := true
	if err != nil {
		appErr := toAppError(err)
		msg = streamMessage{Type: "error", Error: appErr.Message}
		// An unknown symbol will never resolve.
		keepOpen = appErr.Status != http.StatusNotFound
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(msg); err != nil {
		return false
	}
	return keepOpen
}
