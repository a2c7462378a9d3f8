package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kaiwastudio/kaiwa/pkg/archive"
	"github.com/kaiwastudio/kaiwa/pkg/capture"
	"github.com/kaiwastudio/kaiwa/pkg/history"
	"github.com/kaiwastudio/kaiwa/pkg/session"
	"github.com/kaiwastudio/kaiwa/pkg/studioapi"
	"github.com/kaiwastudio/kaiwa/pkg/vapi"
)

var callCmd = &cobra.Command{
	Use:   "call",
	Short: "Start a voice conversation",
	Long: `Start a realtime voice conversation with the assistant.

The transcript streams to the terminal as you talk. Spoken hotwords
(「撮影して」「録音して」...) open capture workflows; slash commands
drive them by hand:

  /mute /unmute     toggle the microphone
  /camera           open the camera preview
  /snap             capture a frame for review
  /record           start (or finish) an audio recording
  /stop             finish the active recording
  /retake           discard the reviewed capture and try again
  /submit           deliver the reviewed capture to the conversation
  /cancel           abandon the open capture workflow
  /context <text>   inject background context into the conversation
  /geofence <key>   simulate arriving at a preset location
  /notify <title>   simulate receiving a push notification
  /end              hang up

Any other input line is injected as context, same as /context.`,
	Args: cobra.NoArgs,
	RunE: runCall,
}

var (
	callContext     string
	callAssistantID string
	callMuted       bool
	callGrace       time.Duration
	callNoHistory   bool
	callNoArchive   bool
)

func init() {
	callCmd.Flags().StringVarP(&callContext, "context", "c", "", "config context to use")
	callCmd.Flags().StringVar(&callAssistantID, "assistant-id", "", "pre-built assistant ID (overrides vapi.yaml)")
	callCmd.Flags().BoolVar(&callMuted, "muted", false, "start with the microphone muted")
	callCmd.Flags().DurationVar(&callGrace, "grace", session.DefaultErrorGracePeriod, "how long to wait after a transport fault before forcing idle")
	callCmd.Flags().BoolVar(&callNoHistory, "no-history", false, "do not record the call in the local journal")
	callCmd.Flags().BoolVar(&callNoArchive, "no-archive", false, "do not archive captured artifacts")

	rootCmd.AddCommand(callCmd)
}

// Terminal styles for the live call view.
var (
	styleUser    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff9f"))
	styleAgent   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7"))
	styleSystem  = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0af68"))
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6e7681"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f"))
	styleStatus  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#bb9af7"))
	styleHotword = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e0af68"))
)

func runCall(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	client, vcfg, err := loadVapiClient(callContext)
	if err != nil {
		return err
	}
	assistantID := callAssistantID
	if assistantID == "" {
		assistantID = vcfg.AssistantID
	}

	studio, studioCfg, err := loadStudioClient(callContext)
	if err != nil {
		return err
	}

	assistant := &vapi.AssistantOptions{AssistantID: assistantID}
	if assistantID == "" {
		// Inline assistant, configured from the backend settings when
		// they are reachable.
		var systemPrompt, voiceID string
		if settings, gerr := studio.Settings.Get(ctx, studioCfg.UserID); gerr == nil {
			systemPrompt = settings.SystemPrompt
			voiceID = settings.VoiceID
		}
		assistant.Assistant = vapi.DefaultAssistant(systemPrompt, voiceID)
	}

	analyzer, err := loadAnalyzer(ctx, callContext)
	if err != nil {
		return err
	}

	var archiver *archive.Archiver
	if !callNoArchive {
		store, err := loadArchiveStore(callContext)
		if err != nil {
			return err
		}
		archiver = archive.NewArchiver(store, "")
	}

	manager := capture.NewManager(&capture.SimCamera{}, &capture.SimMicrophone{})
	sess := session.New(session.Config{
		Transport:        session.NewVapiTransport(client, assistant),
		Hotwords:         session.NewDispatcher(),
		Captures:         manager,
		ErrorGracePeriod: callGrace,
	})
	ctrl := &callController{
		session:  sess,
		captures: manager,
		relay:    session.NewRelay(sess, analyzer),
		archiver: archiver,
		studio:   studio,
	}

	startedAt := time.Now()
	if err := sess.Start(ctx); err != nil {
		if errors.Is(err, session.ErrNotConfigured) {
			name := callContext
			if name == "" {
				name = cfg.CurrentContext
			}
			return fmt.Errorf("%w\nset public_key in %s", err, cfg.ServicePath(name, "vapi"))
		}
		return err
	}
	if callMuted {
		if err := sess.SetMuted(true); err != nil {
			fmt.Println(styleError.Render(fmt.Sprintf("mute: %v", err)))
		}
	}
	fmt.Println(styleDim.Render("connected, type /end or press Ctrl-C to hang up"))

	done := make(chan struct{})
	go renderEvents(ctx, ctrl, done)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			select {
			case lines <- strings.TrimSpace(scanner.Text()):
			case <-done:
				return
			}
		}
	}()

	interrupted := ctx.Done()
	for running := true; running; {
		select {
		case <-interrupted:
			interrupted = nil
			stop()
			if err := sess.Stop(); err != nil {
				fmt.Println(styleError.Render(fmt.Sprintf("hangup: %v", err)))
			}
		case line, ok := <-lines:
			if !ok {
				lines = nil
				if err := sess.Stop(); err != nil {
					fmt.Println(styleError.Render(fmt.Sprintf("hangup: %v", err)))
				}
				continue
			}
			ctrl.dispatch(ctx, line)
		case <-done:
			running = false
		}
	}

	if !callNoHistory {
		if err := recordCall(cfg.HistoryDir(), ctrl, startedAt); err != nil {
			fmt.Println(styleError.Render(fmt.Sprintf("history: %v", err)))
		}
	}
	fmt.Println(styleDim.Render("call ended"))
	return nil
}

// renderEvents streams session events to the terminal until the session
// returns to idle.
func renderEvents(ctx context.Context, ctrl *callController, done chan<- struct{}) {
	defer close(done)
	for ev := range ctrl.session.Events() {
		switch ev.Kind {
		case session.EventStatus:
			fmt.Println(styleStatus.Render("● " + ev.Status.String()))
			if ev.Status == session.StatusIdle {
				return
			}
		case session.EventTranscript:
			fmt.Println(roleStyle(ev.Transcript.Role).Render(roleLabel(ev.Transcript.Role)) + " " + ev.Transcript.Text)
		case session.EventCaption:
			if ev.Caption.Text != "" {
				fmt.Println(styleDim.Render(roleLabel(ev.Caption.Role) + " " + ev.Caption.Text + "…"))
			}
		case session.EventHotword:
			fmt.Println(styleHotword.Render(fmt.Sprintf("⚡ %s (%q)", ev.Hotword.Command, ev.Hotword.Phrase)))
			ctrl.onHotword(ctx, ev.Hotword)
		case session.EventError:
			fmt.Println(styleError.Render(fmt.Sprintf("✗ %v", ev.Err)))
		}
	}
}

func roleLabel(r session.Role) string {
	switch r {
	case session.RoleUser:
		return "you ▸"
	case session.RoleAssistant:
		return "assistant ▸"
	default:
		return "system ▸"
	}
}

func roleStyle(r session.Role) lipgloss.Style {
	switch r {
	case session.RoleUser:
		return styleUser
	case session.RoleAssistant:
		return styleAgent
	default:
		return styleSystem
	}
}

// callController serializes capture actions triggered from two places,
// typed slash commands and spoken hotwords.
type callController struct {
	session  *session.Session
	captures *capture.Manager
	relay    *session.Relay
	archiver *archive.Archiver
	studio   *studioapi.Client

	mu     sync.Mutex
	images int
	clips  int
}

func (c *callController) dispatch(ctx context.Context, line string) {
	if line == "" {
		return
	}
	cmd, rest, _ := strings.Cut(line, " ")
	if !strings.HasPrefix(cmd, "/") {
		cmd, rest = "/context", line
	}

	var err error
	switch cmd {
	case "/mute":
		err = c.session.SetMuted(true)
	case "/unmute":
		err = c.session.SetMuted(false)
	case "/camera":
		err = c.openCamera(ctx)
	case "/snap":
		err = c.snap(ctx)
	case "/record":
		err = c.record(ctx)
	case "/stop":
		err = c.stopRecording()
	case "/retake":
		err = c.retake(ctx)
	case "/submit":
		err = c.submit(ctx)
	case "/cancel":
		err = c.cancel()
	case "/context":
		if rest == "" {
			err = fmt.Errorf("usage: /context <text>")
		} else {
			err = c.session.InjectContext(rest)
		}
	case "/geofence":
		if rest == "" {
			err = fmt.Errorf("usage: /geofence <preset-key>")
		} else {
			err = c.simulateGeofence(ctx, rest)
		}
	case "/notify":
		if rest == "" {
			err = fmt.Errorf("usage: /notify <title>")
		} else {
			err = c.simulateNotification(ctx, rest)
		}
	case "/end":
		err = c.session.Stop()
	default:
		err = fmt.Errorf("unknown command %s", cmd)
	}
	if err != nil {
		fmt.Println(styleError.Render(fmt.Sprintf("%s: %v", cmd, err)))
	}
}

// onHotword maps a spoken command onto the capture workflows. A capture
// hotword while the matching workflow is already recording finishes it,
// so 「録音停止」 works as expected.
func (c *callController) onHotword(ctx context.Context, m session.Match) {
	var err error
	switch m.Command {
	case session.CommandCaptureImage:
		err = c.openCamera(ctx)
	case session.CommandCaptureAudio:
		if rec := c.captures.Recorder(); rec != nil && rec.Status() == capture.StatusActive {
			err = c.stopRecording()
		} else {
			err = c.record(ctx)
		}
	}
	if err != nil {
		fmt.Println(styleError.Render(fmt.Sprintf("%s: %v", m.Command, err)))
	}
}

func (c *callController) openCamera(ctx context.Context) error {
	if _, err := c.captures.OpenCamera(ctx); err != nil {
		return err
	}
	fmt.Println(styleDim.Render("camera open, /snap to capture"))
	return nil
}

func (c *callController) snap(ctx context.Context) error {
	cam := c.captures.Camera()
	if cam == nil {
		return fmt.Errorf("no camera is open")
	}
	if _, err := cam.Snap(ctx); err != nil {
		return err
	}
	fmt.Println(styleDim.Render("frame captured, /submit to send or /retake"))
	return nil
}

func (c *callController) record(ctx context.Context) error {
	if rec := c.captures.Recorder(); rec != nil && rec.Status() == capture.StatusActive {
		return c.stopRecording()
	}
	if _, err := c.captures.OpenRecorder(ctx); err != nil {
		return err
	}
	fmt.Println(styleDim.Render("recording, /stop to finish"))
	return nil
}

func (c *callController) stopRecording() error {
	rec := c.captures.Recorder()
	if rec == nil {
		return fmt.Errorf("no recording is active")
	}
	if err := rec.Finish(); err != nil {
		return err
	}
	if _, d, err := rec.Audio(); err == nil {
		fmt.Println(styleDim.Render(fmt.Sprintf("recorded %.1fs, /submit to confirm or /retake", d.Seconds())))
	}
	return nil
}

func (c *callController) retake(ctx context.Context) error {
	if cam := c.captures.Camera(); cam != nil && cam.Status() == capture.StatusReviewing {
		return cam.Retake()
	}
	if rec := c.captures.Recorder(); rec != nil && rec.Status() == capture.StatusReviewing {
		return rec.Retake(ctx)
	}
	return fmt.Errorf("nothing to retake")
}

// submit delivers whichever workflow is in review. The delivery is a
// single attempt; the workflow is closed whether it succeeds or not.
func (c *callController) submit(ctx context.Context) error {
	if cam := c.captures.Camera(); cam != nil && cam.Status() == capture.StatusReviewing {
		image, err := cam.Submit()
		if err != nil {
			return err
		}
		defer cam.Close()
		c.archiveImage(ctx, image)
		if err := c.relay.SubmitImage(ctx, image, ""); err != nil {
			return err
		}
		c.mu.Lock()
		c.images++
		c.mu.Unlock()
		fmt.Println(styleDim.Render("image delivered"))
		return nil
	}
	if rec := c.captures.Recorder(); rec != nil && rec.Status() == capture.StatusReviewing {
		clip, d, err := rec.Submit()
		if err != nil {
			return err
		}
		defer rec.Close()
		c.archiveAudio(ctx, clip)
		c.relay.SubmitAudio(d)
		c.mu.Lock()
		c.clips++
		c.mu.Unlock()
		fmt.Println(styleDim.Render("recording delivered"))
		return nil
	}
	return fmt.Errorf("nothing to submit")
}

func (c *callController) cancel() error {
	if cam := c.captures.Camera(); cam != nil && cam.Status().Open() {
		return cam.Close()
	}
	if rec := c.captures.Recorder(); rec != nil && rec.Status().Open() {
		return rec.Close()
	}
	return fmt.Errorf("nothing to cancel")
}

// simulateGeofence triggers a preset geofence arrival on the backend
// and injects the resulting message into the live conversation.
func (c *callController) simulateGeofence(ctx context.Context, key string) error {
	result, err := c.studio.Simulation.TriggerPresetGeofence(ctx, key, studioapi.GeofenceArrival)
	if err != nil {
		return err
	}
	c.session.AddSystemNote(result.Message)
	return c.session.InjectContext(result.Message)
}

func (c *callController) simulateNotification(ctx context.Context, title string) error {
	result, err := c.studio.Simulation.ReceiveNotification(ctx, studioapi.Notification{Title: title})
	if err != nil {
		return err
	}
	c.session.AddSystemNote(result.Message)
	return c.session.InjectContext(result.Message)
}

func (c *callController) archiveImage(ctx context.Context, image []byte) {
	if c.archiver == nil {
		return
	}
	path, err := c.archiver.SaveImage(ctx, image)
	if err != nil {
		fmt.Println(styleError.Render(fmt.Sprintf("archive: %v", err)))
		return
	}
	fmt.Println(styleDim.Render("archived " + path))
}

func (c *callController) archiveAudio(ctx context.Context, clip []byte) {
	if c.archiver == nil {
		return
	}
	path, err := c.archiver.SaveAudio(ctx, clip)
	if err != nil {
		fmt.Println(styleError.Render(fmt.Sprintf("archive: %v", err)))
		return
	}
	fmt.Println(styleDim.Render("archived " + path))
}

// recordCall appends the finished call to the local journal.
func recordCall(dir string, ctrl *callController, startedAt time.Time) error {
	journal, err := history.Open(dir)
	if err != nil {
		return err
	}
	defer journal.Close()

	ctrl.mu.Lock()
	images, clips := ctrl.images, ctrl.clips
	ctrl.mu.Unlock()

	rec := &history.CallRecord{
		StartedAt:     startedAt,
		EndedAt:       time.Now(),
		Transcript:    ctrl.session.Transcript(),
		ImageCaptures: images,
		AudioCaptures: clips,
	}
	if ctrl.archiver != nil {
		rec.ID = ctrl.archiver.CallID()
	}
	return journal.Append(rec)
}
