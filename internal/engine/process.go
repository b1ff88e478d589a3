package engine

import (
	"bufio"
	"io"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"
)

// engineProcess owns one spawned UCI engine and its three standard streams.
type engineProcess struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	pid   int
	done  chan struct{} // closed once Wait returns
}

// spawnEngine starts the engine binary with its standard streams redirected
// for interactive use. onLine receives each complete stdout line, onStderr
// each complete stderr line; onExit fires exactly once when the process
// terminates. The exit watcher waits for both readers to drain before
// reaping, so no output is lost on close.
func spawnEngine(path string, onLine, onStderr func(p *engineProcess, line string), onExit func(p *engineProcess, err error)) (*engineProcess, error) {
	cmd := exec.Command(path)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	p := &engineProcess{cmd: cmd, stdin: stdin, pid: cmd.Process.Pid, done: make(chan struct{})}

	var readers sync.WaitGroup
	readers.Add(2)
	go func() {
		defer readers.Done()
		readLines(stdout, func(line string) { onLine(p, line) })
	}()
	go func() {
		defer readers.Done()
		readLines(stderr, func(line string) { onStderr(p, line) })
	}()
	go func() {
		readers.Wait()
		werr := cmd.Wait()
		close(p.done)
		onExit(p, werr)
	}()
	return p, nil
}

// readLines reassembles arbitrarily chunked byte data into complete lines
// and forwards each one. A trailing partial line is held until more data
// arrives; chunk delivery is never assumed to be line-aligned.
func readLines(r io.Reader, fn func(string)) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line != "" {
			fn(line)
		}
	}
}

// writeLine sends one newline-terminated command to the engine stdin.
func (p *engineProcess) writeLine(cmd string) error {
	_, err := io.WriteString(p.stdin, cmd+"\n")
	return err
}

// exitCode returns the process exit code, or -1 while still running.
func (p *engineProcess) exitCode() int {
	if p.cmd == nil || p.cmd.ProcessState == nil {
		return -1
	}
	return p.cmd.ProcessState.ExitCode()
}

// terminate waits up to grace for a voluntary exit (the quit command has
// already been written), then escalates SIGTERM and finally Kill. Best
// effort; platform-specific.
func (p *engineProcess) terminate(grace time.Duration) {
	if p.cmd == nil || p.cmd.Process == nil {
		return
	}
	select {
	case <-p.done:
		return
	case <-time.After(grace):
	}
	_ = p.cmd.Process.Signal(syscall.SIGTERM)
	select {
	case <-p.done:
		return
	case <-time.After(grace):
	}
	_ = p.cmd.Process.Kill()
	<-p.done
}
