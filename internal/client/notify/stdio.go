package notify

import (
	"fmt"
	"os"
)

// Stdio печатает уведомления в терминал.
// Ошибки уходят в stderr, успех и информация — в stdout.
type Stdio struct{}

// NewStdio создает терминальный Notifier
func NewStdio() Notifier {
	return &Stdio{}
}

// Success печатает сообщение об успехе
func (s *Stdio) Success(msg string) {
	fmt.Printf("✓ %s\n", msg)
}

// Info печатает информационное сообщение
func (s *Stdio) Info(msg string) {
	fmt.Printf("• %s\n", msg)
}

// Error печатает сообщение об ошибке
func (s *Stdio) Error(msg string) {
	fmt.Fprintf(os.Stderr, "✗ %s\n", msg)
}
