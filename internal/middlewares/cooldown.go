package middlewares

import (
	"fmt"
	"sync"
	"time"

	"github.com/zekrotja/ken"
)

// CommandCooldown is implemented by commands that enforce a
// per-user cooldown.
type CommandCooldown interface {
	// Cooldown returns the cooldown of the command in seconds.
	Cooldown() int
}

type CooldownMiddleware struct {
	mu       sync.Mutex
	lastUsed map[string]map[string]time.Time // map[userID]map[commandName]lastUse
}

var _ ken.MiddlewareBefore = (*CooldownMiddleware)(nil)

func NewCooldownMiddleware() *CooldownMiddleware {
	return &CooldownMiddleware{
		lastUsed: make(map[string]map[string]time.Time),
	}
}

func (m *CooldownMiddleware) Before(ctx *ken.Ctx) (next bool, err error) {
	next = true

	cc, ok := ctx.Command.(CommandCooldown)
	if !ok || cc.Cooldown() <= 0 {
		return
	}

	if remaining, on := m.check(ctx.User().ID, ctx.Command.Name(), cc.Cooldown()); on {
		next = false
		err = ctx.RespondError(
			fmt.Sprintf("You are on cooldown, try again in %d seconds.", int(remaining.Seconds())+1), "")
	}

	return
}

func (m *CooldownMiddleware) check(userID, commandName string, cooldown int) (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.lastUsed[userID]; !ok {
		m.lastUsed[userID] = make(map[string]time.Time)
	}

	until := m.lastUsed[userID][commandName].Add(time.Duration(cooldown) * time.Second)
	if remaining := time.Until(until); remaining > 0 {
		return remaining, true
	}

	m.lastUsed[userID][commandName] = time.Now()
	return 0, false
}
