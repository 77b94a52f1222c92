package overlay

import (
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"dikt/log"
)

const quitGrace = 2 * time.Second

// Channel owns the overlay subprocess. The process is spawned lazily on
// the first Show, reused across sessions, and torn down once by Quit at
// shutdown. Every send is best-effort: a dead process or broken pipe is
// logged and otherwise ignored.
type Channel struct {
	mu    sync.Mutex
	cmd   *exec.Cmd
	stdin io.WriteCloser
}

func NewChannel() *Channel {
	return &Channel{}
}

func (c *Channel) Show(status string) { c.send(Show(status), true) }

func (c *Channel) Update(text string) { c.send(Update(text), false) }

func (c *Channel) Hide() { c.send(Hide(), false) }

// Quit asks the overlay to exit, waits briefly, then kills it.
func (c *Channel) Quit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cmd == nil {
		return
	}
	c.writeLocked(Quit())
	if c.cmd == nil {
		// The quit write hit a dead process; nothing left to reap.
		return
	}
	c.stdin.Close()

	done := make(chan struct{})
	go func() {
		c.cmd.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(quitGrace):
		c.cmd.Process.Kill()
		<-done
	}
	c.cmd = nil
	c.stdin = nil
}

func (c *Channel) send(cmd Command, spawn bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.runningLocked() {
		if !spawn {
			return
		}
		if err := c.spawnLocked(); err != nil {
			log.Warnf("overlay spawn failed: %v", err)
			return
		}
	}
	c.writeLocked(cmd)
}

func (c *Channel) runningLocked() bool {
	return c.cmd != nil && c.cmd.ProcessState == nil
}

// spawnLocked re-execs this binary with the overlay argv subcommand.
func (c *Channel) spawnLocked() error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	cmd := exec.Command(exe, "overlay")
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return err
	}
	c.cmd = cmd
	c.stdin = stdin
	return nil
}

func (c *Channel) writeLocked(cmd Command) {
	if c.stdin == nil {
		return
	}
	line, err := cmd.encode()
	if err != nil {
		return
	}
	if _, err := c.stdin.Write(line); err != nil {
		// Broken pipe: the overlay died. Forget it so the next Show
		// respawns.
		log.Warnf("overlay write failed: %v", err)
		c.cmd = nil
		c.stdin = nil
	}
}
