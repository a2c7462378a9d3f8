// Package session implements the orchestration core of a live voice
// conversation: the session state machine, the append-only transcript
// log, hotword dispatch over finalized user utterances, and the relay
// that reports capture results back into the conversation.
//
// A Session owns exactly one Transport instance for its lifetime and is
// the single writer of session status and transcript state. Consumers
// observe it through the Events channel and the read-only accessors.
//
//	transport := session.NewVapiTransport(client, nil)
//	sess, err := session.New(session.Config{Transport: transport})
//	if err != nil {
//	    return err
//	}
//	if err := sess.Start(ctx); err != nil {
//	    return err
//	}
//	for ev := range sess.Events() {
//	    switch ev.Kind {
//	    case session.EventTranscript:
//	        fmt.Printf("%s: %s\n", ev.Transcript.Role, ev.Transcript.Text)
//	    case session.EventHotword:
//	        openCaptureWorkflow(ev.Hotword.Command)
//	    }
//	}
package session
