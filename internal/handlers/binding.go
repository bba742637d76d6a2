package handlers

import (
	"bytes"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

// BindNestedOrFlat decodes the body into obj. A body wrapped under key ({"user": {...}}) is
// unwrapped first; anything else is decoded as is. The body stays readable afterwards.
func BindNestedOrFlat(c *gin.Context, key string, obj interface{}) error {
	var body []byte
	if c.Request.Body != nil {
		var err error
		if body, err = io.ReadAll(c.Request.Body); err != nil {
			return err
		}
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapped); err == nil {
		if inner, ok := wrapped[key]; ok {
			return json.Unmarshal(inner, obj)
		}
	}

	return json.Unmarshal(body, obj)
}
