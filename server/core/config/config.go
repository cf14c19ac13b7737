package config

import (
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type IConfigKey string

const (
	KeyLog    IConfigKey = "log"
	KeyHttp   IConfigKey = "http"
	KeyWriter IConfigKey = "writer"
)

type IConfig interface {
	Init() error
	Load(key string, result interface{}) error
	GetConfig(key IConfigKey) (interface{}, bool)
	SetConfig(key IConfigKey, v interface{}) error
}

type LogConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
	Level   string `mapstructure:"level" yaml:"level"`
}

type HttpConfig struct {
	Ip   string `mapstructure:"ip" yaml:"ip"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// WriterConfig controls where file sessions are written.
type WriterConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

type Config struct {
	Log    LogConfig
	Http   HttpConfig
	Writer WriterConfig
}

func Default() *Config {
	return &Config{
		Log:    LogConfig{Backend: "logrus", Level: "info"},
		Http:   HttpConfig{Ip: "", Port: 6789},
		Writer: WriterConfig{Dir: "flv"},
	}
}

func (c *Config) Validate() error {
	switch c.Log.Backend {
	case "logrus", "zap":
	default:
		return errors.Errorf("log.backend %q is not one of logrus, zap", c.Log.Backend)
	}
	if c.Http.Port <= 0 || c.Http.Port > 65535 {
		return errors.Errorf("http.port %d out of range", c.Http.Port)
	}
	if c.Writer.Dir == "" {
		return errors.New("writer.dir is empty")
	}
	return nil
}

// YamlConfig is an IConfig backed by a yaml document. Sections are decoded
// lazily with mapstructure so values like "6789" still fill an int field.
type YamlConfig struct {
	path string
	raw  map[string]interface{}
}

func NewYamlConfig(path string) *YamlConfig {
	return &YamlConfig{path: path}
}

func NewYamlConfigFromBytes(b []byte) (*YamlConfig, error) {
	c := &YamlConfig{}
	if err := c.parse(b); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *YamlConfig) Init() error {
	b, err := os.ReadFile(c.path)
	if err != nil {
		return errors.Wrapf(err, "read config %s", c.path)
	}
	return c.parse(b)
}

func (c *YamlConfig) parse(b []byte) error {
	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return errors.Wrap(err, "parse yaml config")
	}
	c.raw = raw
	return nil
}

func (c *YamlConfig) Load(key string, result interface{}) error {
	v, ok := c.raw[key]
	if !ok {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           result,
	})
	if err != nil {
		return err
	}
	return errors.Wrapf(dec.Decode(v), "decode config section %s", key)
}

func (c *YamlConfig) GetConfig(key IConfigKey) (interface{}, bool) {
	v, ok := c.raw[string(key)]
	return v, ok
}

func (c *YamlConfig) SetConfig(key IConfigKey, v interface{}) error {
	if c.raw == nil {
		c.raw = map[string]interface{}{}
	}
	c.raw[string(key)] = v
	return nil
}

// Resolve overlays every known section of ic onto the defaults and validates the result.
func Resolve(ic IConfig) (*Config, error) {
	cfg := Default()
	sections := []struct {
		key IConfigKey
		dst interface{}
	}{
		{KeyLog, &cfg.Log},
		{KeyHttp, &cfg.Http},
		{KeyWriter, &cfg.Writer},
	}
	for _, s := range sections {
		if err := ic.Load(string(s.key), s.dst); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads path and resolves it into a validated Config.
func LoadFile(path string) (*Config, error) {
	ic := NewYamlConfig(path)
	if err := ic.Init(); err != nil {
		return nil, err
	}
	return Resolve(ic)
}
