// Package app provides the dependency injection container for the application.
package app

import (
	"github.com/thinktodo/tt/internal/domain"
	"github.com/thinktodo/tt/internal/infra/config"
	"github.com/thinktodo/tt/internal/infra/jsonstore"
	"github.com/thinktodo/tt/internal/infra/logging"
	"github.com/thinktodo/tt/internal/infra/rig"
	"github.com/thinktodo/tt/internal/infra/tmux"
	"github.com/thinktodo/tt/internal/monitor"
	"github.com/thinktodo/tt/internal/usecase"
	"github.com/thinktodo/tt/internal/worker"
	"time"
)

// Container provides dependency injection for the application.
// It binds every port to its implementation and provides factory methods
// for use cases.
type Container struct {
	Tasks            domain.TaskRepository
	Audit            domain.AuditLog
	Mail             domain.Mailbox
	Rigs             domain.RigRepository
	Costs            domain.CostLedger
	StoreInitializer domain.StoreInitializer
	Sessions         domain.SessionManager
	Workers          domain.WorkerLauncher
	Inspector        domain.RepoInspector
	ConfigLoader     domain.ConfigLoader
	ConfigWriter     usecase.DefaultConfigWriter
	Clock            domain.Clock
	Logger           domain.Logger
	AppConfig        *domain.Config
	WorkDir          string

	opsLog *logging.Logger
}

// Close releases resources held by the container.
func (c *Container) Close() error {
	if c.opsLog != nil {
		return c.opsLog.Close()
	}
	return nil
}

// New creates a Container rooted at workDir. Config load failures fall
// back to defaults so read-only commands still work.
func New(workDir string) *Container {
	loader := config.NewLoader(domain.DataDir(workDir))
	cfg, err := loader.Load()
	if err != nil {
		cfg = domain.NewDefaultConfig()
	}

	logger := logging.New(domain.OpsLogDir(workDir), logging.ParseLevel(cfg.Log.Level))
	store := jsonstore.New(domain.StorePath(workDir))
	sessions := tmux.NewClient()
	workers := worker.New(sessions, logger, workDir)

	return &Container{
		Tasks:            store,
		Audit:            store,
		Mail:             store,
		Rigs:             store.Rigs(),
		Costs:            store.Costs(),
		StoreInitializer: store,
		Sessions:         sessions,
		Workers:          workers,
		Inspector:        rig.NewInspector(),
		ConfigLoader:     loader,
		ConfigWriter:     loader,
		Clock:            domain.RealClock{},
		Logger:           logger,
		AppConfig:        cfg,
		WorkDir:          workDir,
		opsLog:           logger,
	}
}

// UseCase factory methods.

// InitUseCase returns a new Init use case.
func (c *Container) InitUseCase() *usecase.Init {
	return usecase.NewInit(c.StoreInitializer, c.ConfigWriter)
}

// AddTaskUseCase returns a new AddTask use case.
func (c *Container) AddTaskUseCase() *usecase.AddTask {
	return usecase.NewAddTask(c.Tasks, c.Clock)
}

// ImportTasksUseCase returns a new ImportTasks use case.
func (c *Container) ImportTasksUseCase() *usecase.ImportTasks {
	return usecase.NewImportTasks(c.Tasks, c.Clock)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Tasks)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Tasks)
}

// SlingUseCase returns a new Sling use case.
func (c *Container) SlingUseCase() *usecase.Sling {
	return usecase.NewSling(c.Tasks, c.Audit, c.Workers, c.ConfigLoader, c.Clock, c.Logger)
}

// DoneUseCase returns a new Done use case.
func (c *Container) DoneUseCase() *usecase.Done {
	return usecase.NewDone(c.Tasks, c.Audit, c.Workers, c.Clock, c.Logger)
}

// SpawnWorkerUseCase returns a new SpawnWorker use case.
func (c *Container) SpawnWorkerUseCase() *usecase.SpawnWorker {
	return usecase.NewSpawnWorker(c.Audit, c.Workers, c.ConfigLoader, c.Clock)
}

// NukeWorkerUseCase returns a new NukeWorker use case.
func (c *Container) NukeWorkerUseCase() *usecase.NukeWorker {
	return usecase.NewNukeWorker(c.Workers)
}

// NudgeUseCase returns a new Nudge use case.
func (c *Container) NudgeUseCase() *usecase.Nudge {
	return usecase.NewNudge(c.Sessions, c.Mail, c.Audit, c.Clock)
}

// PeekUseCase returns a new Peek use case.
func (c *Container) PeekUseCase() *usecase.Peek {
	return usecase.NewPeek(c.Tasks, c.WorkDir)
}

// TrailUseCase returns a new Trail use case.
func (c *Container) TrailUseCase() *usecase.Trail {
	return usecase.NewTrail(c.Audit)
}

// BeadsUseCase returns a new Beads use case.
func (c *Container) BeadsUseCase() *usecase.Beads {
	return usecase.NewBeads(c.Tasks, c.Audit, c.Costs)
}

// SendMailUseCase returns a new SendMail use case.
func (c *Container) SendMailUseCase() *usecase.SendMail {
	return usecase.NewSendMail(c.Mail, c.Clock)
}

// InboxUseCase returns a new Inbox use case.
func (c *Container) InboxUseCase() *usecase.Inbox {
	return usecase.NewInbox(c.Mail)
}

// ReadMailUseCase returns a new ReadMail use case.
func (c *Container) ReadMailUseCase() *usecase.ReadMail {
	return usecase.NewReadMail(c.Mail)
}

// AddRigUseCase returns a new AddRig use case.
func (c *Container) AddRigUseCase() *usecase.AddRig {
	return usecase.NewAddRig(c.Rigs, c.Inspector, c.Clock)
}

// ListRigsUseCase returns a new ListRigs use case.
func (c *Container) ListRigsUseCase() *usecase.ListRigs {
	return usecase.NewListRigs(c.Rigs)
}

// RigStatusUseCase returns a new RigStatus use case.
func (c *Container) RigStatusUseCase() *usecase.RigStatus {
	return usecase.NewRigStatus(c.Rigs)
}

// AddCostUseCase returns a new AddCost use case.
func (c *Container) AddCostUseCase() *usecase.AddCost {
	return usecase.NewAddCost(c.Costs, c.Clock)
}

// ListCostsUseCase returns a new ListCosts use case.
func (c *Container) ListCostsUseCase() *usecase.ListCosts {
	return usecase.NewListCosts(c.Costs)
}

// CostSummaryUseCase returns a new CostSummary use case.
func (c *Container) CostSummaryUseCase() *usecase.CostSummary {
	return usecase.NewCostSummary(c.Costs)
}

// AdminStartUseCase returns a new AdminStart use case.
func (c *Container) AdminStartUseCase() *usecase.AdminStart {
	return usecase.NewAdminStart(c.Sessions, c.Tasks, c.ConfigLoader, c.WorkDir)
}

// NewMonitor returns the completion detector configured from AppConfig.
func (c *Container) NewMonitor() *monitor.Monitor {
	interval := time.Duration(c.AppConfig.Monitor.IntervalSeconds) * time.Second
	return monitor.New(c.Tasks, c.Logger, c.WorkDir, interval)
}
