package resource

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/spf13/viper"
)

const defaultPropertiesPath = "configs/application.yml"

var (
	properties = viper.New()
	envPattern = regexp.MustCompile(`\$\{([^:}]+)(?::([^}]*))?}`)
)

// PropertiesPath returns PROPERTIES_FILE_PATH or the default configs/application.yml.
func PropertiesPath() string {
	if value, ok := os.LookupEnv("PROPERTIES_FILE_PATH"); ok && value != "" {
		return value
	}
	return defaultPropertiesPath
}

// Init loads the yml file at filepath and resolves ${ENV:default} placeholders in string values.
func Init(filepath string) error {
	v := viper.New()
	v.SetConfigFile(filepath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read properties %s: %w", filepath, err)
	}

	resolved := viper.New()
	for _, key := range v.AllKeys() {
		value := v.Get(key)
		if str, ok := value.(string); ok {
			value = resolveEnvVariables(str)
		}
		resolved.Set(key, value)
	}

	properties = resolved
	return nil
}

// resolveEnvVariables replaces every ${NAME:default} occurrence with the environment value,
// falling back to the default, or to an empty string when neither exists.
func resolveEnvVariables(value string) string {
	return envPattern.ReplaceAllStringFunc(value, func(match string) string {
		groups := envPattern.FindStringSubmatch(match)
		if envValue, exists := os.LookupEnv(groups[1]); exists {
			return envValue
		}
		return groups[2]
	})
}

// Set overrides a property, mostly useful in tests.
func Set(key string, value any) {
	properties.Set(key, value)
}

func Get(key string) any {
	return properties.Get(key)
}

func GetString(key string) string {
	return properties.GetString(key)
}

// GetStringOrDefault returns defaultValue when the key is missing or blank.
func GetStringOrDefault(key string, defaultValue string) string {
	if value := properties.GetString(key); value != "" {
		return value
	}
	return defaultValue
}

func GetBool(key string) bool {
	return properties.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return properties.GetDuration(key)
}

func GetTime(key string) time.Time {
	return properties.GetTime(key)
}

func GetInt(key string) int {
	return properties.GetInt(key)
}

// GetIntOrDefault returns defaultValue when the key is missing or zero.
func GetIntOrDefault(key string, defaultValue int) int {
	if value := properties.GetInt(key); value != 0 {
		return value
	}
	return defaultValue
}

func GetInt32(key string) int32 {
	return properties.GetInt32(key)
}

func GetInt64(key string) int64 {
	return properties.GetInt64(key)
}

func GetFloat64(key string) float64 {
	return properties.GetFloat64(key)
}

func GetStringSlice(key string) []string {
	return properties.GetStringSlice(key)
}
