package handlers

import (
	"encoding/json"
	"fmt"
	"time"

	"slate/models"
	"slate/services/events"
	"slate/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// streamSSE runs work in the background and forwards every event it emits
// as a server-sent event, followed by one "final" (or "error") frame built
// from work's return value. If the client disconnects, remaining events are
// dropped while work runs to completion.
func streamSSE(c *gin.Context, work func(sink events.Sink) gin.H) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(200)

	stream := events.NewStream()
	final := make(chan gin.H, 1)

	go func() {
		defer stream.Close()
		defer func() {
			if r := recover(); r != nil {
				utils.GetLogger().Error("stream worker panic", zap.Any("panic", r))
				final <- gin.H{"type": models.EventError, "message": "Something went wrong", "timestamp": time.Now()}
			}
		}()
		final <- work(stream)
	}()

	done := c.Request.Context().Done()
	for {
		select {
		case <-done:
			stream.Abandon()
			return
		case e, ok := <-stream.C():
			if !ok {
				writeSSE(c, <-final)
				return
			}
			writeSSE(c, e)
		}
	}
}

func writeSSE(c *gin.Context, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		utils.GetLogger().Warn("sse marshal failed", zap.Error(err))
		return
	}
	fmt.Fprintf(c.Writer, "data: %s\n\n", b)
	c.Writer.Flush()
}
