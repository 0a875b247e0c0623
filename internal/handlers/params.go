package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbearia-agenda/internal/httperr"
)

// bindJSON binds the body and writes the 400 itself on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return false
	}
	return true
}

// splitCSV turns "a, b,,c" into [a b c].
func splitCSV(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// queryInt reads an optional integer query parameter. Absent means def;
// present but malformed is an error.
func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+name, "Parâmetro inválido: "+name+".")
		return 0, false
	}
	return n, true
}
