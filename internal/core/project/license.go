package project

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// licenseFileNames are checked in order; the first existing file wins.
var licenseFileNames = []string{
	"LICENSE", "LICENSE.md", "LICENSE.txt",
	"License", "License.md", "License.txt",
	"license", "license.md", "license.txt",
	"COPYING",
}

// licenseSignatures are matched in order against the upper-cased license text.
var licenseSignatures = []struct {
	re   *regexp.Regexp
	name string
}{
	{regexp.MustCompile(`\bMIT\b`), "MIT"},
	{regexp.MustCompile(`\bAPACHE\b`), "Apache 2.0"},
	{regexp.MustCompile(`\b(A|L)?GPL\b|GNU GENERAL PUBLIC`), "GPL"},
	{regexp.MustCompile(`\bBSD\b`), "BSD"},
	{regexp.MustCompile(`\bISC\b`), "ISC"},
	{regexp.MustCompile(`MOZILLA PUBLIC LICENSE`), "MPL 2.0"},
}

// licenseCustom is reported for a license file that matches no signature.
const licenseCustom = "Custom"

// findLicenseFile returns the first license file present at root, or "".
func findLicenseFile(root string) string {
	entries, err := os.ReadDir(root)
	if err != nil {
		return ""
	}
	// Compare exact names so case-insensitive filesystems report the real one.
	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			present[e.Name()] = true
		}
	}
	for _, name := range licenseFileNames {
		if present[name] {
			return name
		}
	}
	return ""
}

// sniffLicense classifies the license text in root/name.
func sniffLicense(root, name string) string {
	data, err := os.ReadFile(filepath.Join(root, name))
	if err != nil {
		return ""
	}
	text := strings.ToUpper(string(data))
	for _, sig := range licenseSignatures {
		if sig.re.MatchString(text) {
			return sig.name
		}
	}
	return licenseCustom
}
