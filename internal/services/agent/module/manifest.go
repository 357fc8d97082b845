package module

import (
	_ "embed"
	"os"
	"strings"

	perr "trendscout/internal/platform/errors"
	"trendscout/internal/platform/net/http/bind"
	str "trendscout/internal/platform/strings"
	"trendscout/internal/services/agent/domain"

	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var defaultManifest []byte

// LoadManifest reads the manifest from path, or the embedded default when path is
// empty, then applies non empty identity overrides
func LoadManifest(path, speakerURI, serviceURL string) (domain.Manifest, error) {
	raw := defaultManifest
	if p := strings.TrimSpace(path); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return domain.Manifest{}, perr.Wrapf(err, perr.ErrorCodeNotFound, "read manifest %s", p)
		}
		raw = b
	}
	m, err := ParseManifest(raw)
	if err != nil {
		return domain.Manifest{}, err
	}
	m.Identification.SpeakerURI = str.FirstNonBlank(speakerURI, m.Identification.SpeakerURI)
	m.Identification.ServiceURL = str.FirstNonBlank(serviceURL, m.Identification.ServiceURL)
	if msgs := bind.Struct(m); len(msgs) > 0 {
		return domain.Manifest{}, perr.Validationf("manifest: %s", strings.Join(msgs, "; "))
	}
	return m, nil
}

// ParseManifest decodes a YAML manifest. Unknown keys are rejected so typos surface
func ParseManifest(raw []byte) (domain.Manifest, error) {
	var m domain.Manifest
	dec := yaml.NewDecoder(strings.NewReader(string(raw)))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return domain.Manifest{}, perr.Wrap(err, perr.ErrorCodeValidation, "parse manifest")
	}
	return m, nil
}
