package github

import (
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

var (
	sshRemote   = regexp.MustCompile(`git@github\.com:([^/]+)/(.+?)(?:\.git)?/?$`)
	httpsRemote = regexp.MustCompile(`https://github\.com/([^/]+)/(.+?)(?:\.git)?/?$`)
)

// ResolveRepo returns owner and name from an "owner/name" argument,
// falling back to the origin remote of the current git checkout
func ResolveRepo(repo string) (string, string, error) {
	if repo != "" {
		return SplitRepo(repo)
	}
	return ParseOwnerRepo()
}

// SplitRepo splits "owner/name"
func SplitRepo(repo string) (string, string, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(repo), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("repository must be owner/name, got %q", repo)
	}
	return owner, name, nil
}

// ParseOwnerRepo extracts owner and repo from git remote origin
func ParseOwnerRepo() (string, string, error) {
	cmd := exec.Command("git", "remote", "get-url", "origin")
	output, err := cmd.Output()
	if err != nil {
		return "", "", fmt.Errorf("failed to get git remote: %w", err)
	}

	return parseOwnerRepoFromURL(strings.TrimSpace(string(output)))
}

// parseOwnerRepoFromURL extracts owner and repo from a remote URL string
func parseOwnerRepoFromURL(url string) (string, string, error) {
	if matches := sshRemote.FindStringSubmatch(url); len(matches) == 3 {
		return matches[1], strings.TrimSuffix(matches[2], "/"), nil
	}

	if matches := httpsRemote.FindStringSubmatch(url); len(matches) == 3 {
		return matches[1], strings.TrimSuffix(matches[2], "/"), nil
	}

	return "", "", fmt.Errorf("unable to parse owner/repo from remote URL: %s", url)
}
