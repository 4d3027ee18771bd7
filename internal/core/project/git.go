package project

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-ini/ini"
)

// remoteInfo is what the origin remote tells us about the project.
type remoteInfo struct {
	Repo     string
	CloneURL string
}

// readOriginRemote reads the origin URL from root/.git/config. A missing
// repository or remote yields an empty result.
func readOriginRemote(root string) remoteInfo {
	gitConfig := filepath.Join(root, ".git", "config")
	if !fileExists(gitConfig) {
		return remoteInfo{}
	}
	cfg, err := ini.LoadSources(ini.LoadOptions{Loose: true}, gitConfig)
	if err != nil {
		return remoteInfo{}
	}
	url := strings.TrimSpace(cfg.Section(`remote "origin"`).Key("url").String())
	return parseRemoteURL(url)
}

var (
	sshRemoteRe   = regexp.MustCompile(`^(?:ssh://)?git@([^:/]+)[:/](.+?)/([^/]+?)(?:\.git)?/?$`)
	httpsRemoteRe = regexp.MustCompile(`^https?://(?:[^@/]+@)?([^/]+)/(.+?)/([^/]+?)(?:\.git)?/?$`)
)

// parseRemoteURL normalises SSH and HTTPS remotes to an https clone URL.
// Unrecognised URLs are returned as-is with no repo name.
func parseRemoteURL(url string) remoteInfo {
	if url == "" {
		return remoteInfo{}
	}
	for _, re := range []*regexp.Regexp{sshRemoteRe, httpsRemoteRe} {
		if m := re.FindStringSubmatch(url); m != nil {
			host, owner, repo := m[1], m[2], m[3]
			return remoteInfo{
				Repo:     repo,
				CloneURL: "https://" + host + "/" + owner + "/" + repo + ".git",
			}
		}
	}
	return remoteInfo{CloneURL: url}
}
