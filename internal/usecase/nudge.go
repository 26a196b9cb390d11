package usecase

import (
	"context"
	"fmt"

	"github.com/thinktodo/tt/internal/domain"
)

// NudgeInput contains the parameters for nudging an agent.
type NudgeInput struct {
	Agent   string
	Message string
	Actor   string // Audit actor; defaults to "user"
}

// NudgeOutput contains the result of a nudge.
type NudgeOutput struct {
	Delivered bool // True if displayed in a live session, false if mailed
}

// Nudge is the use case for poking a live agent. If the agent's session is
// live the message flashes in it; otherwise it lands in the agent's inbox.
type Nudge struct {
	sessions domain.SessionManager
	mail     domain.Mailbox
	audit    domain.AuditLog
	clock    domain.Clock
}

// NewNudge creates a new Nudge use case.
func NewNudge(
	sessions domain.SessionManager,
	mail domain.Mailbox,
	audit domain.AuditLog,
	clock domain.Clock,
) *Nudge {
	return &Nudge{
		sessions: sessions,
		mail:     mail,
		audit:    audit,
		clock:    clock,
	}
}

// Execute delivers the nudge.
func (uc *Nudge) Execute(_ context.Context, in NudgeInput) (*NudgeOutput, error) {
	actor := in.Actor
	if actor == "" {
		actor = "user"
	}

	sessionName := domain.WorkerSessionName(in.Agent)
	if uc.sessions.IsRunning(sessionName) {
		if err := uc.sessions.Display(sessionName, fmt.Sprintf("!!! NUDGE: %s !!!", in.Message)); err != nil {
			return nil, fmt.Errorf("display nudge: %w", err)
		}
		_ = uc.audit.Append(domain.AuditRecord{
			Time:    uc.clock.Now(),
			Actor:   actor,
			Action:  "nudge_sent",
			Target:  in.Agent,
			Outcome: "success",
		})
		return &NudgeOutput{Delivered: true}, nil
	}

	if _, err := uc.mail.Send(domain.Message{
		Time:     uc.clock.Now(),
		Sender:   actor,
		Receiver: in.Agent,
		Subject:  "NUDGE: Action Required",
		Body:     in.Message,
	}); err != nil {
		return nil, fmt.Errorf("mail nudge: %w", err)
	}
	_ = uc.audit.Append(domain.AuditRecord{
		Time:    uc.clock.Now(),
		Actor:   actor,
		Action:  "nudge_mailed",
		Target:  in.Agent,
		Outcome: "success",
	})
	return &NudgeOutput{Delivered: false}, nil
}
