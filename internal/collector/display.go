package collector

import (
	"image"
	"image/color"
	"sync"

	"gocv.io/x/gocv"
)

// Command is an operator input polled once per frame.
type Command int

const (
	// CmdNone means no input this frame.
	CmdNone Command = iota
	// CmdLogDrowsy logs the current frame with label 0.
	CmdLogDrowsy
	// CmdLogAlert logs the current frame with label 1.
	CmdLogAlert
	// CmdQuit ends the capture loop.
	CmdQuit
)

// Display shows frames to the operator and reports their commands.
// Show and Poll are called once per frame, in that order.
type Display interface {
	Show(frame *gocv.Mat)
	Poll() Command
	Close() error
}

// escKey is the keycode cv::waitKey reports for Escape.
const escKey = 27

// Window is a Display backed by an OpenCV window.
type Window struct {
	win *gocv.Window
}

// NewWindow opens an OpenCV window with the given title.
func NewWindow(title string) *Window {
	return &Window{win: gocv.NewWindow(title)}
}

// Show renders the frame with the key-binding hint overlaid.
func (w *Window) Show(frame *gocv.Mat) {
	gocv.PutText(frame, "Press 0=drowsy, 1=alert, q=quit",
		image.Pt(10, 30), gocv.FontHersheySimplex, 0.6,
		color.RGBA{R: 255, G: 255, B: 255, A: 255}, 2)
	w.win.IMShow(*frame)
}

// Poll waits briefly for a keypress and maps it to a Command.
func (w *Window) Poll() Command {
	switch w.win.WaitKey(1) {
	case '0':
		return CmdLogDrowsy
	case '1':
		return CmdLogAlert
	case 'q', escKey:
		return CmdQuit
	default:
		return CmdNone
	}
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.win.Close()
}

// MockDisplay is a test implementation of Display that replays a
// scripted command sequence. Once the script is exhausted it returns
// CmdQuit so test loops always terminate.
type MockDisplay struct {
	mu       sync.Mutex
	commands []Command
	index    int
	shown    int
	closed   bool
}

// NewMockDisplay creates a MockDisplay replaying the given commands.
func NewMockDisplay(commands ...Command) *MockDisplay {
	return &MockDisplay{commands: commands}
}

func (m *MockDisplay) Show(frame *gocv.Mat) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shown++
}

func (m *MockDisplay) Poll() Command {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.index >= len(m.commands) {
		return CmdQuit
	}
	cmd := m.commands[m.index]
	m.index++
	return cmd
}

func (m *MockDisplay) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Shown returns how many frames were displayed.
func (m *MockDisplay) Shown() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shown
}

// Closed reports whether Close was called.
func (m *MockDisplay) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
