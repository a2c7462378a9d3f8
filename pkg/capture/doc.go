// Package capture implements the camera and audio capture workflows
// opened by spoken commands during a voice session.
//
// A workflow walks a fixed lifecycle: idle, acquiring (waiting for the
// device), active (previewing or recording), reviewing (artifact held
// for a decision), submitting, closed. The device is released exactly
// once no matter how the workflow ends. A Manager owns at most one open
// workflow per kind and tears all of them down when the session ends:
//
//	mgr := capture.NewManager(&capture.SimCamera{}, &capture.SimMicrophone{})
//	cam, err := mgr.OpenCamera(ctx)
//	if err != nil {
//		return err
//	}
//	shot, err := cam.Snap(ctx)
//	...
//	defer mgr.CloseAll()
package capture
