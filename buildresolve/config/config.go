// Package config loads the Build Resolution Engine's configuration (spec.md
// §6), following the same viper-based, file-then-environment pattern as
// evidence/config.LoadEvidenceConfig in the jfrog-cli-artifactory lineage.
package config

import (
	"path/filepath"

	"github.com/jfrog/jfrog-cli-core/v2/utils/coreutils"
	"github.com/jfrog/jfrog-client-go/utils/errorutils"
	"github.com/jfrog/jfrog-client-go/utils/io/fileutils"
	"github.com/spf13/viper"
)

const (
	jfrogDir       = ".jfrog"
	resolverDir    = "build-resolver"
	configFileYml  = "resolver.yml"
	configFileYaml = "resolver.yaml"

	keyChecksumTypes       = "checksumTypes"
	keyArchiveTypes        = "archiveTypes"
	keyArchiveExtensions   = "archiveExtensions"
	keyKojiNumThreads      = "kojiNumThreads"
	keyKojiMulticallSize   = "kojiMulticallSize"
	keyBuildSystems        = "buildSystems"
	keyPncURL              = "pncURL"

	envChecksumTypes     = "BUILD_RESOLVER_CHECKSUM_TYPES"
	envArchiveTypes      = "BUILD_RESOLVER_ARCHIVE_TYPES"
	envArchiveExtensions = "BUILD_RESOLVER_ARCHIVE_EXTENSIONS"
	envKojiNumThreads    = "BUILD_RESOLVER_KOJI_NUM_THREADS"
	envKojiMulticallSize = "BUILD_RESOLVER_KOJI_MULTICALL_SIZE"
	envBuildSystems      = "BUILD_RESOLVER_BUILD_SYSTEMS"
	envPncURL            = "BUILD_RESOLVER_PNC_URL"

	defaultKojiNumThreads    = 4
	defaultKojiMulticallSize = 100
)

// ResolverConfig is the configuration table from spec.md §6.
type ResolverConfig struct {
	ChecksumTypes     []string `mapstructure:"checksumTypes"`
	ArchiveTypes      []string `mapstructure:"archiveTypes"`
	ArchiveExtensions []string `mapstructure:"archiveExtensions"`
	KojiNumThreads    int      `mapstructure:"kojiNumThreads"`
	KojiMulticallSize int      `mapstructure:"kojiMulticallSize"`
	BuildSystems      []string `mapstructure:"buildSystems"`
	PncURL            string   `mapstructure:"pncURL"`
}

// PncEnabled reports whether the PNC branch of the resolver should run
// (§6: "pncURL: enables PNC branch when non-empty").
func (c *ResolverConfig) PncEnabled() bool {
	return c.PncURL != ""
}

// LoadResolverConfig reads the resolver configuration from the upstream
// .jfrog root, falling back to the jfrog home directory, and finally to
// environment variables alone. It never returns a nil config; defaults are
// applied when nothing overrides them.
func LoadResolverConfig() (*ResolverConfig, error) {
	if root, exists, err := fileutils.FindUpstream(jfrogDir, fileutils.Dir); err == nil && exists {
		if cfg, ok := readConfigWithEnv(filepath.Join(root, jfrogDir, resolverDir, configFileYml)); ok {
			return cfg, nil
		}
		if cfg, ok := readConfigWithEnv(filepath.Join(root, jfrogDir, resolverDir, configFileYaml)); ok {
			return cfg, nil
		}
	}

	if home, err := coreutils.GetJfrogHomeDir(); err == nil && home != "" {
		if cfg, ok := readConfigWithEnv(filepath.Join(home, resolverDir, configFileYml)); ok {
			return cfg, nil
		}
		if cfg, ok := readConfigWithEnv(filepath.Join(home, resolverDir, configFileYaml)); ok {
			return cfg, nil
		}
	}

	cfg, _ := readConfigWithEnv("")
	return cfg, nil
}

func readConfigWithEnv(path string) (*ResolverConfig, bool) {
	v := viper.New()

	_ = v.BindEnv(keyChecksumTypes, envChecksumTypes)
	_ = v.BindEnv(keyArchiveTypes, envArchiveTypes)
	_ = v.BindEnv(keyArchiveExtensions, envArchiveExtensions)
	_ = v.BindEnv(keyKojiNumThreads, envKojiNumThreads)
	_ = v.BindEnv(keyKojiMulticallSize, envKojiMulticallSize)
	_ = v.BindEnv(keyBuildSystems, envBuildSystems)
	_ = v.BindEnv(keyPncURL, envPncURL)
	v.AutomaticEnv()

	v.SetDefault(keyKojiNumThreads, defaultKojiNumThreads)
	v.SetDefault(keyKojiMulticallSize, defaultKojiMulticallSize)
	v.SetDefault(keyChecksumTypes, []string{"md5"})
	v.SetDefault(keyBuildSystems, []string{"KOJI"})

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, false
		}
	}

	cfg := new(ResolverConfig)
	if err := v.Unmarshal(cfg); err != nil {
		_ = errorutils.CheckError(err)
		return nil, false
	}
	return cfg, true
}
