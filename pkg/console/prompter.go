package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter owns terminal input: a pump goroutine reads lines off the shared
// reader and delivers them over a channel, so the menu loop can wait for
// input and remote change notifications at the same time. It is also the
// yes/no Confirmer handed to the domain services.
type Prompter struct {
	lines chan string
	out   io.Writer
}

func NewPrompter(in *bufio.Reader, out io.Writer) *Prompter {
	p := &Prompter{lines: make(chan string), out: out}
	go p.pump(in)
	return p
}

func (p *Prompter) pump(in *bufio.Reader) {
	for {
		line, err := in.ReadString('\n')
		if err != nil {
			if line != "" {
				p.lines <- strings.TrimSpace(line)
			}
			close(p.lines)
			return
		}
		p.lines <- strings.TrimSpace(line)
	}
}

func (p *Prompter) Confirm(prompt string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)
	answer, ok := p.read()
	if !ok {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// read delivers the next input line; ok is false once input is exhausted.
func (p *Prompter) read() (string, bool) {
	line, ok := <-p.lines
	return line, ok
}
