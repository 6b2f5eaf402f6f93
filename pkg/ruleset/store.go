package ruleset

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/topdrawer/pkg/errors"
	"github.com/arthur-debert/topdrawer/pkg/filesystem"
	"github.com/arthur-debert/topdrawer/pkg/logging"
	"github.com/arthur-debert/topdrawer/pkg/rules"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	yamlv3 "gopkg.in/yaml.v3"
)

// Format is the on-disk encoding of a document
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "toml"
}

// FormatFor picks the format from the file extension. Anything other than
// .yaml or .yml is TOML.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func (f Format) parser() koanf.Parser {
	if f == FormatYAML {
		return yaml.Parser()
	}
	return toml.Parser()
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

type rawDocument struct {
	Version *int  `mapstructure:"Version"`
	Rules   []any `mapstructure:"Rules"`
}

type rawEntry struct {
	Name string `mapstructure:"Name"`
}

// Load reads the document at path. A missing file is reported with
// errors.ErrNotFound so callers can start from an empty document.
func Load(fs afero.Fs, path string) (*Document, error) {
	logger := logging.GetLogger("ruleset")

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(err, errors.ErrNotFound, "no rules file at %s", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrRulesLoad, "failed to read rules from %s", path).
			WithDetail("path", path)
	}

	doc, err := Parse(data, FormatFor(path))
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			return nil, e.WithDetail("path", path)
		}
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Int("rules", len(doc.Rules)).
		Msg("Loaded rules")
	return doc, nil
}

// LoadOrNew is Load that returns an empty document when the file does not
// exist
func LoadOrNew(fs afero.Fs, path string) (*Document, error) {
	doc, err := Load(fs, path)
	if errors.IsErrorCode(err, errors.ErrNotFound) {
		return New(), nil
	}
	return doc, err
}

// Parse decodes a document. Rules that are not maps or have no conditions
// list are dropped, as are conditions that fail to decode; each drop is
// logged.
func Parse(data []byte, format Format) (*Document, error) {
	logger := logging.GetLogger("ruleset")

	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: data}, format.parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRulesParse, "failed to parse rules document as %s", format)
	}

	var raw rawDocument
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: &raw})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to create decoder")
	}
	if err := dec.Decode(k.Raw()); err != nil {
		return nil, errors.Wrap(err, errors.ErrRulesParse, "malformed rules document")
	}

	version := CurrentVersion
	if raw.Version != nil {
		version = *raw.Version
	}
	if version > CurrentVersion {
		return nil, errors.Newf(errors.ErrRulesVersion,
			"rules document version %d is newer than supported version %d", version, CurrentVersion).
			WithDetail("version", version)
	}

	doc := &Document{Version: version}
	for i, item := range raw.Rules {
		p, ok := item.(map[string]any)
		if !ok {
			logger.Warn().Int("rule", i).Msg("Dropping rule that is not a map")
			continue
		}
		rule, dropped, ok := rules.DecodeRule(p)
		if !ok {
			logger.Warn().Int("rule", i).Msg("Dropping rule without a conditions list")
			continue
		}
		if dropped > 0 {
			logger.Warn().
				Int("rule", i).
				Int("dropped", dropped).
				Interface("cases", conditionCases(p)).
				Msg("Dropped conditions that could not be decoded")
		}

		var entry rawEntry
		if err := mapstructure.Decode(p, &entry); err != nil {
			logger.Warn().Int("rule", i).Err(err).Msg("Ignoring malformed rule name")
		}
		doc.Rules = append(doc.Rules, Entry{Name: entry.Name, Rule: rule})
	}
	return doc, nil
}

// conditionCases lists the discriminators of a persisted rule for logging
func conditionCases(p map[string]any) []any {
	list, _ := p[rules.KeyConditions].([]any)
	cases := make([]any, 0, len(list))
	for _, c := range list {
		if m, ok := c.(map[string]any); ok {
			cases = append(cases, m[rules.KeyCase])
		} else {
			cases = append(cases, nil)
		}
	}
	return cases
}

// Marshal encodes the document in the given format
func Marshal(doc *Document, format Format) ([]byte, error) {
	p := doc.ToPersisted()

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatYAML:
		data, err = yamlv3.Marshal(p)
	default:
		data, err = gotoml.Marshal(p)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrRulesSave, "failed to encode rules as %s", format)
	}
	return data, nil
}

// Save atomically replaces the document at path, creating parent
// directories. The format follows the file extension.
func Save(fs afero.Fs, path string, doc *Document) error {
	logger := logging.GetLogger("ruleset")

	data, err := Marshal(doc, FormatFor(path))
	if err != nil {
		return err
	}
	if err := filesystem.WriteFileAtomic(fs, path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrRulesSave, "failed to write rules to %s", path).
			WithDetail("path", path)
	}

	logger.Info().
		Str("path", path).
		Int("rules", len(doc.Rules)).
		Msg("Saved rules")
	return nil
}
