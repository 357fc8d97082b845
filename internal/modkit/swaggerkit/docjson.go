package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"trendscout/internal/core/version"
	perr "trendscout/internal/platform/errors"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openapiYAML []byte

// Doc renders the embedded OpenAPI document as JSON stamped with the build version
func Doc() ([]byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(openapiYAML, &doc); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "parse openapi doc")
	}
	info, _ := doc["info"].(map[string]any)
	if info == nil {
		info = map[string]any{}
		doc["info"] = info
	}
	info["version"] = version.Info().Version
	return json.Marshal(doc)
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := Doc()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(b)
	}
}
