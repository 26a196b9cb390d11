package usecase

import (
	"context"
	"fmt"

	"github.com/thinktodo/tt/internal/domain"
)

// AddRigInput contains the parameters for registering a rig.
type AddRigInput struct {
	Name string
	Path string
	Repo string // Remote URL; auto-detected from origin when empty
}

// AddRig is the use case for registering an external repository.
type AddRig struct {
	rigs      domain.RigRepository
	inspector domain.RepoInspector
	clock     domain.Clock
}

// NewAddRig creates a new AddRig use case.
func NewAddRig(rigs domain.RigRepository, inspector domain.RepoInspector, clock domain.Clock) *AddRig {
	return &AddRig{rigs: rigs, inspector: inspector, clock: clock}
}

// Execute validates the path is a git repository and registers the rig,
// replacing any existing entry of the same name. The origin remote fills
// the repo field when the caller left it empty.
func (uc *AddRig) Execute(_ context.Context, in AddRigInput) (*domain.Rig, error) {
	remote, err := uc.inspector.RemoteURL(in.Path)
	if err != nil {
		return nil, err
	}

	repo := in.Repo
	if repo == "" {
		repo = remote
	}

	rig := domain.Rig{
		Name:     in.Name,
		Path:     in.Path,
		Repo:     repo,
		Status:   "active",
		LastSync: uc.clock.Now(),
	}
	if err := uc.rigs.Put(rig); err != nil {
		return nil, fmt.Errorf("save rig: %w", err)
	}
	return &rig, nil
}

// ListRigs is the use case for listing registered rigs.
type ListRigs struct {
	rigs domain.RigRepository
}

// NewListRigs creates a new ListRigs use case.
func NewListRigs(rigs domain.RigRepository) *ListRigs {
	return &ListRigs{rigs: rigs}
}

// Execute returns all rigs sorted by name.
func (uc *ListRigs) Execute(_ context.Context) ([]domain.Rig, error) {
	return uc.rigs.List()
}

// RigStatus is the use case for showing one rig.
type RigStatus struct {
	rigs domain.RigRepository
}

// NewRigStatus creates a new RigStatus use case.
func NewRigStatus(rigs domain.RigRepository) *RigStatus {
	return &RigStatus{rigs: rigs}
}

// Execute returns the rig by name.
func (uc *RigStatus) Execute(_ context.Context, name string) (*domain.Rig, error) {
	rig, err := uc.rigs.Get(name)
	if err != nil {
		return nil, fmt.Errorf("get rig: %w", err)
	}
	if rig == nil {
		return nil, fmt.Errorf("rig %q: %w", name, domain.ErrRigNotFound)
	}
	return rig, nil
}
