// Package bind provides request body reading and validation helpers for handlers
package bind

import (
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "trendscout/internal/platform/errors"
	"trendscout/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// DefaultMaxBytes caps a body when the caller passes 0
const DefaultMaxBytes int64 = 1 << 20

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Init initializes the singleton validator with english translations and json tag names
func Init() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer json tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		registerNotBlank(v)
		registerShort(v, trans)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc { return Init() }

// ReadBody reads at most max bytes of the request body and closes it.
// Empty and oversized bodies are JSON errors so they map to 400
func ReadBody(r *http.Request, max int64) ([]byte, error) {
	if max <= 0 {
		max = DefaultMaxBytes
	}
	if r.Body == nil {
		return nil, perr.JSONErrf("empty body")
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Debug().Err(err).Msg("failed to close request body")
		}
	}()

	b, err := io.ReadAll(io.LimitReader(r.Body, max+1))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "read body")
	}
	if int64(len(b)) > max {
		return nil, perr.JSONErrf("body exceeds %d bytes", max)
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return nil, perr.JSONErrf("empty body")
	}
	return b, nil
}

// Struct validates v and returns every failure translated, nil when v is valid
func Struct(v any) []string {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator internal error")
	}
	return ValidationMessages(err)
}

// ValidationMessages translates every failure in err. Field names are replaced by
// their path below the root struct, e.g. "openFloor.conversation.id is a required field"
func ValidationMessages(err error) []string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fe.Translate(Get().Translator)
		ns := fe.Namespace()
		if i := strings.IndexByte(ns, '.'); i >= 0 {
			ns = ns[i+1:]
		}
		if ns != "" && ns != fe.Field() {
			msg = strings.Replace(msg, fe.Field(), ns, 1)
		}
		out = append(out, msg)
	}
	return out
}

// short holds terser messages than the stock english ones. Slices, maps and
// strings count elements rather than compare values, so min and max read differently
var short = map[string]struct{ value, count string }{
	"min":      {"{0} must be at least {1}", "{0} must have at least {1} items"},
	"max":      {"{0} must be at most {1}", "{0} must have at most {1} items"},
	"notblank": {"{0} must not be blank", "{0} must not be blank"},
}

func registerShort(v *validator.Validate, trans ut.Translator) {
	for tag, m := range short {
		_ = v.RegisterTranslation(tag, trans,
			func(t ut.Translator) error {
				if err := t.Add(tag, m.value, true); err != nil {
					return err
				}
				return t.Add(tag+"_count", m.count, true)
			},
			func(t ut.Translator, fe validator.FieldError) string {
				key := tag
				switch fe.Kind() {
				case reflect.Slice, reflect.Map, reflect.Array:
					key = tag + "_count"
				}
				msg, _ := t.T(key, fe.Field(), fe.Param())
				return msg
			},
		)
	}
}

// notblank rejects strings that are empty after trimming
func registerNotBlank(v *validator.Validate) {
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		f := fl.Field()
		return f.Kind() == reflect.String && strings.TrimSpace(f.String()) != ""
	})
}
