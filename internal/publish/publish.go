// Package publish commits generated components to a GitHub repository
// using the contents API.
package publish

import (
	"context"
	"fmt"
	"path"
	"strings"

	gogh "github.com/google/go-github/v68/github"
)

// Publisher commits files to a fixed repository, branch, and directory.
type Publisher struct {
	gh     *gogh.Client
	repo   string // "owner/repo"
	branch string
	dir    string // directory inside the repo
}

// New creates a Publisher authenticated with the given token.
// Branch defaults to "main" if empty.
func New(token, repo, branch, dir string) *Publisher {
	if branch == "" {
		branch = "main"
	}
	return &Publisher{
		gh:     gogh.NewClient(nil).WithAuthToken(token),
		repo:   repo,
		branch: branch,
		dir:    dir,
	}
}

// Publish creates or updates <dir>/<fileName> on the configured branch
// and returns the HTML URL of the committed file.
func (p *Publisher) Publish(ctx context.Context, fileName string, content []byte) (string, error) {
	owner, repo, err := splitRepo(p.repo)
	if err != nil {
		return "", err
	}
	filePath := path.Join(p.dir, fileName)

	opts := &gogh.RepositoryContentFileOptions{
		Message: gogh.Ptr(fmt.Sprintf("Add %s component", fileName)),
		Content: content,
		Branch:  gogh.Ptr(p.branch),
	}

	// The contents API requires the existing blob SHA when updating.
	existing, _, resp, err := p.gh.Repositories.GetContents(ctx, owner, repo, filePath,
		&gogh.RepositoryContentGetOptions{Ref: p.branch})
	if err == nil && existing != nil {
		opts.Message = gogh.Ptr(fmt.Sprintf("Update %s component", fileName))
		opts.SHA = existing.SHA
	} else if resp == nil || resp.StatusCode != 404 {
		return "", fmt.Errorf("checking existing file: %w", err)
	}

	result, _, err := p.gh.Repositories.CreateFile(ctx, owner, repo, filePath, opts)
	if err != nil {
		return "", fmt.Errorf("committing %s: %w", filePath, err)
	}
	return result.Content.GetHTMLURL(), nil
}

// splitRepo splits "owner/repo" into its two parts.
func splitRepo(full string) (owner, repo string, err error) {
	parts := strings.SplitN(full, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q (want owner/repo)", full)
	}
	return parts[0], parts[1], nil
}
