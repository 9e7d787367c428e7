// Package remix asks a language model for themed variations of a recipe,
// either directly through an OpenAI-compatible API or via the mealmix
// remix proxy.
package remix

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jacksmith/mealmix/internal/model"
	"github.com/jacksmith/mealmix/internal/ops"
	"go.uber.org/zap"
)

var (
	// ErrNoCredential means no API key is configured for direct requests.
	ErrNoCredential = errors.New("no OpenAI API key configured")
	// ErrEmptyCompletion means the model answered without any content.
	ErrEmptyCompletion = errors.New("model returned no remix")
)

// BuildPrompt returns the single user message sent to the model. The full
// source record is embedded as JSON so the model sees every field.
func BuildPrompt(r *model.Recipe, theme string) (string, error) {
	data, err := recordJSON(r)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Here is a recipe: %s. %s. Give me a short, fun, creative, "+
		"and totally doable remix of this recipe. Highlight any changed ingredients "+
		"or cooking instructions. Keep it brief and exciting!", data, theme), nil
}

func recordJSON(r *model.Recipe) ([]byte, error) {
	var v any = r.Record
	if r.Record == nil {
		v = r
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding recipe: %w", err)
	}
	return data, nil
}

// Options selects and configures a remix source.
type Options struct {
	Model   string
	APIKey  string
	BaseURL string
	// ProxyURL, when set, routes remixes through a mealmix serve proxy and
	// the API key is not used.
	ProxyURL string
	Timeout  time.Duration
}

// New returns the remix source described by opts.
func New(opts Options, log *zap.Logger) ops.RemixSource {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.ProxyURL != "" {
		log.Debug("remixing through proxy", zap.String("url", opts.ProxyURL))
		return NewProxyClient(opts.ProxyURL, opts.Timeout)
	}
	log.Debug("remixing directly", zap.String("model", opts.Model))
	return NewOpenAI(opts)
}
