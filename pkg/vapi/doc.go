// Package vapi provides a client for the Vapi realtime voice-agent API.
//
// A Call is a live spoken conversation with a remote assistant. The
// transport performs speech recognition, speech synthesis and turn-taking
// inference on its side; this client exchanges typed control messages and
// receives the normalized event stream over a WebSocket connection.
//
// # Starting a Call
//
//	client := vapi.NewClient(publicKey)
//	call, err := client.Start(ctx, &vapi.AssistantOptions{
//	    AssistantID: "asst_123",
//	})
//	if err != nil {
//	    return err
//	}
//	defer call.Stop()
//
// Instead of a pre-provisioned assistant ID, an inline assistant
// definition can be supplied (see DefaultAssistant).
//
// # Receiving Messages
//
// Use the Messages iterator to receive server messages:
//
//	for msg, err := range call.Messages() {
//	    if err != nil {
//	        return err
//	    }
//	    switch msg.Type {
//	    case vapi.MessageTypeTranscript:
//	        fmt.Printf("%s: %s\n", msg.Role, msg.Transcript)
//	    case vapi.MessageTypeCallEnd:
//	        return nil
//	    }
//	}
//
// Message kinds not known to this package are delivered with their raw
// payload attached so callers can ignore or inspect them; they never
// terminate the iteration.
package vapi
