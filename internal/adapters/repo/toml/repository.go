// Package toml persists the collector configuration as a TOML file.
package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/bnema/claude-remote-collector/internal/domain"
	"github.com/bnema/claude-remote-collector/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName      = "config"
	configType      = "toml"
	configFile      = configName + "." + configType
	configFileMode  = 0o600
	configDirMode   = 0o700
	envPrefix       = "CRC"
	tempFilePattern = ".config-*.toml.tmp"
)

type Repository struct {
	dir  string
	path string
	mu   *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ConfigRepository = (*Repository)(nil)

// NewRepository reads and writes config.toml inside dir. Every read goes back
// to disk so a long-running process sees edits made by other invocations.
func NewRepository(dir string) (*Repository, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("config directory is empty")
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve config directory: %w", err)
	}
	absDir = filepath.Clean(absDir)
	path := filepath.Join(absDir, configFile)

	return &Repository{dir: absDir, path: path, mu: lockForPath(path)}, nil
}

func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) Load(ctx context.Context) (domain.Config, error) {
	v, err := r.read(ctx)
	if err != nil {
		return domain.Config{}, err
	}

	var schema configSchema
	if err := v.Unmarshal(&schema); err != nil {
		return domain.Config{}, fmt.Errorf("decode config file: %w", err)
	}

	return schema.toDomain(), nil
}

func (r *Repository) Get(ctx context.Context, key string) (string, error) {
	v, err := r.read(ctx)
	if err != nil {
		return "", err
	}

	key = strings.ToLower(strings.TrimSpace(key))
	if _, _, ok := splitKey(key); !ok || !slices.Contains(v.AllKeys(), key) {
		return "", fmt.Errorf("%w: %s", domain.ErrConfigKeyNotFound, key)
	}

	return formatValue(v.Get(key)), nil
}

// Sections lists every effective value grouped by section. Known keys come
// first in their declared order, anything else found in the file follows.
func (r *Repository) Sections(ctx context.Context) ([]ports.ConfigSection, error) {
	v, err := r.read(ctx)
	if err != nil {
		return nil, err
	}

	grouped := map[string][]string{}
	for _, key := range v.AllKeys() {
		section, leaf, ok := splitKey(key)
		if !ok {
			continue
		}
		grouped[section] = append(grouped[section], leaf)
	}

	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)

	sections := make([]ports.ConfigSection, 0, len(names))
	for _, name := range names {
		leaves := orderKeys(name, grouped[name])
		values := make([]ports.ConfigValue, 0, len(leaves))
		for _, leaf := range leaves {
			values = append(values, ports.ConfigValue{
				Key:   leaf,
				Value: formatValue(v.Get(name + "." + leaf)),
			})
		}
		sections = append(sections, ports.ConfigSection{Name: name, Values: values})
	}

	return sections, nil
}

func (r *Repository) Set(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key = strings.ToLower(strings.TrimSpace(key))
	schema, err := lookupKey(key)
	if err != nil {
		return err
	}
	parsed, err := parseValue(key, schema, value)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.readDocument()
	if err != nil {
		return err
	}
	if err := setNested(doc, key, parsed); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeDocument(doc)
}

func (r *Repository) read(ctx context.Context) (*viper.Viper, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(r.dir)
	for key, value := range defaultValues() {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return v, nil
}

func (r *Repository) readDocument() (map[string]any, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	doc := map[string]any{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	return doc, nil
}

func (r *Repository) writeDocument(doc map[string]any) error {
	if err := os.MkdirAll(r.dir, configDirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode config file: %w", err)
	}

	tempFile, err := os.CreateTemp(r.dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}

	if err := tempFile.Chmod(configFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}

	if err := os.Rename(tempName, r.path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.path, configFileMode); err != nil {
		return fmt.Errorf("chmod config file: %w", err)
	}

	return nil
}

func orderKeys(section string, leaves []string) []string {
	ordered := make([]string, 0, len(leaves))
	for _, s := range knownSections {
		if s.name != section {
			continue
		}
		for _, k := range s.keys {
			if slices.Contains(leaves, k.name) {
				ordered = append(ordered, k.name)
			}
		}
	}

	var extra []string
	for _, leaf := range leaves {
		if !slices.Contains(ordered, leaf) {
			extra = append(extra, leaf)
		}
	}
	sort.Strings(extra)

	return append(ordered, extra...)
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
