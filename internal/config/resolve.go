package config

import (
	"github.com/spf13/viper"

	"mongo-keeper/internal/env"
	"mongo-keeper/internal/formula"
	"mongo-keeper/internal/models"
)

/**
 * Partial launch options passed by the caller; zero values fall through to
 * the environment, then the formula defaults, then hard-coded fallbacks
 * @property {string} name - Logical instance name
 * @property {string} platform - Platform identifier overriding auto-detection
 * @property {string} dir - Base directory of the data/logs/source layout
 * @property {int} port - Listen port for the target process
 * @property {[]string} args - Extra arguments appended after the template arguments
 */
type Options struct {
	Name     string
	Platform string
	Dir      string
	Port     int
	Args     []string
}

/**
 * Merge call-time options with environment variables and formula defaults
 * into a fully-specified configuration
 * @param {*models.Formula} f - Formula supplying the default port and platform list
 * @param {Options} opts - Explicit call-time options; zero values are unset
 * @returns {(models.ResolvedConfig, error)} Returns the resolved configuration,
 * or UnsupportedPlatformError when the platform has no formula entry
 * @description
 * - Precedence, highest first: explicit option, environment variable
 *   (MONGO_NAME / MONGO_PLATFORM / MONGO_DIR / MONGO_PORT with PORT fallback),
 *   formula default, hard-coded fallback ("default" name, temp-based dir,
 *   auto-detected platform)
 * - The environment is snapshotted once per call; no ambient lookups later
 * - The platform membership check runs before any I/O is attempted
 */
func Resolve(f *models.Formula, opts Options) (models.ResolvedConfig, error) {
	v := viper.New()
	v.BindEnv("name", "MONGO_NAME")
	v.BindEnv("platform", "MONGO_PLATFORM")
	v.BindEnv("dir", "MONGO_DIR")
	v.BindEnv("port", "MONGO_PORT", "PORT")
	v.SetDefault("name", "default")
	v.SetDefault("platform", formula.DetectPlatform())
	v.SetDefault("dir", env.DefaultBaseDir())
	v.SetDefault("port", f.Port)

	name := opts.Name
	if name == "" {
		name = v.GetString("name")
	}
	platformName := opts.Platform
	if platformName == "" {
		platformName = v.GetString("platform")
	}
	plat, ok := f.Platform(platformName)
	if !ok {
		return models.ResolvedConfig{}, &models.UnsupportedPlatformError{
			Formula:  f.Name,
			Platform: platformName,
		}
	}
	dir := opts.Dir
	if dir == "" {
		dir = v.GetString("dir")
	}
	port := opts.Port
	if port == 0 {
		port = v.GetInt("port")
	}

	return models.ResolvedConfig{
		Name:      name,
		Platform:  plat,
		BaseDir:   dir,
		Port:      port,
		ExtraArgs: opts.Args,
	}, nil
}
