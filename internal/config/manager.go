package config

import (
	"sync"

	"github.com/spf13/pflag"
)

// ConfigManager handles all configuration-related operations in a centralized manner
// ConfigManager 以集中方式处理所有配置相关操作
type ConfigManager struct {
	configPath string
	required   bool
	mutex      sync.RWMutex
	config     *Config
}

// NewConfigManager creates a new configuration manager instance.
// An empty path means DefaultConfigPath, which may be absent.
// NewConfigManager 创建新的配置管理器实例；空路径表示可缺省的默认路径。
func NewConfigManager(configPath string) *ConfigManager {
	required := configPath != ""
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	return &ConfigManager{
		configPath: configPath,
		required:   required,
	}
}

// LoadConfig layers defaults, the config file, env and changed flags, then validates the result.
// LoadConfig 依次叠加默认值、配置文件、环境变量与已修改的标志，然后校验结果。
func (cm *ConfigManager) LoadConfig(flags *pflag.FlagSet) error {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	cfg, err := Load(cm.configPath, cm.required)
	if err != nil {
		return err
	}

	v, err := NewOverrides(flags)
	if err != nil {
		return err
	}
	if err := ApplyOverrides(cfg, v); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	cm.config = cfg
	return nil
}

// SaveConfig saves the current configuration to the specified path
// SaveConfig 将当前配置保存到指定路径
func (cm *ConfigManager) SaveConfig() error {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return nil
	}

	return Save(cm.configPath, cm.config)
}

// GetConfig returns a copy of the current configuration
// GetConfig 返回当前配置的副本
func (cm *ConfigManager) GetConfig() *Config {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	if cm.config == nil {
		return nil
	}

	// Return a copy to prevent external modifications
	cfgCopy := *cm.config
	return &cfgCopy
}

// UpdateConfig validates newConfig and makes it the current configuration
// UpdateConfig 校验 newConfig 并将其设为当前配置
func (cm *ConfigManager) UpdateConfig(newConfig *Config) error {
	if err := newConfig.Validate(); err != nil {
		return err
	}

	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	cfgCopy := *newConfig
	cm.config = &cfgCopy
	return nil
}

// GetConfigPath returns the configuration file path
// GetConfigPath 返回配置文件路径
func (cm *ConfigManager) GetConfigPath() string {
	return cm.configPath
}
