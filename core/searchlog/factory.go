package searchlog

import (
	"github.com/MakerMama/afterschool-finder/core/factory"
)

var storeRegistry = factory.NewRegistry[LogStore]()

// RegisterStore adds a log store factory identified by name.
func RegisterStore(name string, f factory.Factory[LogStore]) error {
	return storeRegistry.Register(name, f)
}

// NewStore creates a LogStore from configuration. An empty type yields a
// NopStore.
func NewStore(cfg factory.ModuleConfig) (LogStore, error) {
	if cfg.Type == "" {
		return NopStore{}, nil
	}
	return storeRegistry.Create(cfg)
}

type fileConf struct {
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

func decodeFile(conf map[string]any, def string) (fileConf, error) {
	var c fileConf
	if err := factory.Decode(conf, &c); err != nil {
		return c, err
	}
	if c.Path == "" {
		c.Path = def
	}
	return c, nil
}

func init() {
	_ = RegisterStore("nop", func(map[string]any) (LogStore, error) { return NopStore{}, nil })
	_ = RegisterStore("jsonl", func(conf map[string]any) (LogStore, error) {
		c, err := decodeFile(conf, "searches.jsonl")
		if err != nil {
			return nil, err
		}
		if c.MaxSizeMB > 0 {
			return NewRotatingJSONLStore(c.Path, c.MaxSizeMB, c.MaxBackups, c.MaxAgeDays)
		}
		return NewJSONLStore(c.Path)
	})
	_ = RegisterStore("sqlite", func(conf map[string]any) (LogStore, error) {
		c, err := decodeFile(conf, "searches.db")
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(c.Path)
	})
}
