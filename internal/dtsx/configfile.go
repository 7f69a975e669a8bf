package dtsx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtsx2py/dtsx2py/internal/diag"
	"github.com/dtsx2py/dtsx2py/internal/model"
	"github.com/dtsx2py/dtsx2py/internal/rules"
)

// ErrDecryptionUnavailable is returned by NoDecryptor for every value. The
// source format's value-encryption scheme is not public; decryption stays
// a pluggable collaborator until it is.
var ErrDecryptionUnavailable = errors.New("configuration value decryption not available")

// Decryptor decodes encrypted configuration values.
type Decryptor interface {
	Decrypt(value string) (string, error)
}

// NoDecryptor is the default Decryptor; it always fails with
// ErrDecryptionUnavailable.
type NoDecryptor struct{}

func (NoDecryptor) Decrypt(string) (string, error) {
	return "", ErrDecryptionUnavailable
}

const encryptedPlaceholder = "[ENCRYPTED]"

// discoverConfigFiles probes the package's directory for sibling
// configuration documents: the fixed name patterns first, then a glob over
// *.dtsConfig, de-duplicated by absolute path.
func discoverConfigFiles(packagePath string) []string {
	dir := filepath.Dir(packagePath)
	stem := strings.TrimSuffix(filepath.Base(packagePath), filepath.Ext(packagePath))

	candidates := []string{
		filepath.Join(dir, stem+".dtsConfig"),
		filepath.Join(dir, stem+".dtsconfig"),
		filepath.Join(dir, "package.dtsConfig"),
		filepath.Join(dir, "package.dtsconfig"),
	}
	if globbed, err := filepath.Glob(filepath.Join(dir, "*.dtsConfig")); err == nil {
		candidates = append(candidates, globbed...)
	}

	var paths []string
	seen := map[string]bool{}
	for _, c := range candidates {
		abs, err := filepath.Abs(c)
		if err != nil {
			continue
		}
		if seen[abs] {
			continue
		}
		if info, err := os.Stat(abs); err != nil || info.IsDir() {
			continue
		}
		seen[abs] = true
		paths = append(paths, abs)
	}
	return paths
}

// extractConfigFile parses one .dtsConfig document. Malformed files are
// non-fatal to the package; the error is recorded by the caller.
func extractConfigFile(path string, dec Decryptor, dc *diag.Collector) (model.ConfigFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.ConfigFile{}, fmt.Errorf("open config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	root, err := decode(f)
	if err != nil {
		return model.ConfigFile{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	cf := model.ConfigFile{Path: path}
	seen := map[string]bool{}

	for _, ce := range descendants(root, "", "Configuration") {
		entry := model.ConfigEntry{
			Path:        attr(ce, "", "Path"),
			ValueType:   attr(ce, "", "ValueType"),
			Description: attr(ce, "", "Description"),
		}
		if entry.ValueType == "" {
			entry.ValueType = "String"
		}
		if cv := child(ce, "", "ConfiguredValue"); cv != nil {
			entry.Value = cv.Text
		}
		if isTrue(attr(ce, "", "Encrypted")) {
			entry.Encrypted = true
			plain, derr := dec.Decrypt(entry.Value)
			if derr != nil {
				dc.Warnf(diag.CategoryConfiguration, diag.Context{
					FilePath: path, Component: "config", Operation: "decrypt",
				}, "could not decrypt value for %s: %v", entry.Path, derr)
				entry.Value = encryptedPlaceholder
			} else {
				entry.Value = plain
			}
		}

		for _, name := range rules.EnvRefs(entry.Value) {
			if !seen[name] {
				seen[name] = true
				cf.EnvironmentRefs = append(cf.EnvironmentRefs, name)
			}
		}
		cf.Entries = append(cf.Entries, entry)
	}
	return cf, nil
}
