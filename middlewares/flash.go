package middlewares

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

// Flash levels map onto the page's alert styles.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// AddFlash queues a message for the next rendered page.
func AddFlash(c *gin.Context, level, message string) {
	flashes := readFlashes(c)
	flashes = append(flashes, Flash{Level: level, Message: message})
	c.Set(flashCookie, flashes)
	writeFlashes(c, flashes)
}

// PopFlashes returns queued messages and clears them.
func PopFlashes(c *gin.Context) []Flash {
	flashes := readFlashes(c)
	if len(flashes) > 0 {
		c.Set(flashCookie, []Flash{})
		dropFlashCookie(c)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	}
	return flashes
}

func readFlashes(c *gin.Context) []Flash {
	if v, ok := c.Get(flashCookie); ok {
		if flashes, ok := v.([]Flash); ok {
			return flashes
		}
	}

	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil
	}
	return flashes
}

func writeFlashes(c *gin.Context, flashes []Flash) {
	data, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	dropFlashCookie(c)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(data), 60, "/", "", false, true)
}

// dropFlashCookie removes a flash cookie queued earlier in this response so
// only the latest state is sent.
func dropFlashCookie(c *gin.Context) {
	h := c.Writer.Header()
	cookies := h.Values("Set-Cookie")
	kept := cookies[:0]
	for _, v := range cookies {
		if !strings.HasPrefix(v, flashCookie+"=") {
			kept = append(kept, v)
		}
	}
	h.Del("Set-Cookie")
	for _, v := range kept {
		h.Add("Set-Cookie", v)
	}
}
