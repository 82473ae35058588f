package engine

import (
	"context"

	"github.com/google/go-github/v66/github"

	"reposync/internal/config"
	gh "reposync/internal/github"
)

// RemoteRepo describes one repository in the remote listing. Immutable once
// fetched; it is only ever diffed against the local scan.
type RemoteRepo struct {
	Name     string
	CloneURL string
	Archived bool
}

// ListRemoteRepos returns the complete repository set for the configured
// organization (optionally narrowed to a team slug), following pagination to
// the end. A partial listing is never returned: any page failure aborts with
// a *RemoteFetchError.
func ListRemoteRepos(ctx context.Context, client *gh.Client, cfg *config.Config) ([]RemoteRepo, error) {
	var (
		repos []RemoteRepo
		err   error
	)
	if cfg.Remote.Team != "" {
		repos, err = listTeamRepos(ctx, client, cfg.Remote.Org, cfg.Remote.Team)
	} else {
		repos, err = listOrgRepos(ctx, client, cfg.Remote.Org)
	}
	if err != nil {
		return nil, &RemoteFetchError{Org: cfg.Remote.Org, Err: err}
	}
	return dedupeRepos(repos), nil
}

func listOrgRepos(ctx context.Context, client *gh.Client, org string) ([]RemoteRepo, error) {
	var out []RemoteRepo

	opts := &github.RepositoryListByOrgOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		repos, resp, err := client.Client.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, err
		}
		for _, repo := range repos {
			out = append(out, remoteRepoFrom(repo))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return out, nil
}

func listTeamRepos(ctx context.Context, client *gh.Client, org, team string) ([]RemoteRepo, error) {
	var out []RemoteRepo

	opts := &github.ListOptions{PerPage: 100}
	for {
		repos, resp, err := client.Client.Teams.ListTeamReposBySlug(ctx, org, team, opts)
		if err != nil {
			return nil, err
		}
		for _, repo := range repos {
			out = append(out, remoteRepoFrom(repo))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return out, nil
}

func remoteRepoFrom(repo *github.Repository) RemoteRepo {
	return RemoteRepo{
		Name:     repo.GetName(),
		CloneURL: repo.GetCloneURL(),
		Archived: repo.GetArchived(),
	}
}

// dedupeRepos drops repeated names, keeping the first occurrence. The API
// should not produce duplicates, but a repeated name would plan two tasks for
// the same target directory.
func dedupeRepos(in []RemoteRepo) []RemoteRepo {
	if len(in) <= 1 {
		return in
	}

	seen := make(map[string]struct{}, len(in))
	out := make([]RemoteRepo, 0, len(in))
	for _, r := range in {
		if _, ok := seen[r.Name]; ok {
			continue
		}
		seen[r.Name] = struct{}{}
		out = append(out, r)
	}
	return out
}
