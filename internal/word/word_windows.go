// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build windows

package word

import (
	"errors"
	"fmt"
	"runtime"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/pdiddy/docx2pdf/pkg/types"
)

// sFalse is returned by CoInitializeEx when COM is already initialised on
// the thread.
const sFalse = 1

// Attach binds to a running Word instance, launching one if none is
// registered as active. The calling goroutine is locked to its OS thread
// until Release.
func Attach(progID string) (Application, error) {
	runtime.LockOSThread()
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != sFalse {
			runtime.UnlockOSThread()
			return nil, fmt.Errorf("%w: initialising COM: %v", types.ErrApplicationFailure, err)
		}
	}

	app, err := attach(progID)
	if err != nil {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, err
	}
	return app, nil
}

func attach(progID string) (*application, error) {
	unknown, err := oleutil.GetActiveObject(progID)
	if err != nil {
		unknown, err = oleutil.CreateObject(progID)
		if err != nil {
			return nil, fmt.Errorf("%w: launching %s: %v", types.ErrApplicationUnavailable, progID, err)
		}
	}
	defer unknown.Release()

	disp, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return nil, fmt.Errorf("%w: querying %s dispatch: %v", types.ErrApplicationFailure, progID, err)
	}

	docs, err := oleutil.GetProperty(disp, "Documents")
	if err != nil {
		disp.Release()
		return nil, fmt.Errorf("%w: getting %s Documents: %v", types.ErrApplicationFailure, progID, err)
	}
	return &application{disp: disp, docs: docs.ToIDispatch()}, nil
}

type application struct {
	disp *ole.IDispatch
	docs *ole.IDispatch
}

func (a *application) Open(path string) (Document, error) {
	v, err := oleutil.CallMethod(a.docs, "Open", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", types.ErrApplicationFailure, path, err)
	}
	return &document{disp: v.ToIDispatch(), path: path}, nil
}

func (a *application) Quit() error {
	if _, err := oleutil.CallMethod(a.disp, "Quit"); err != nil {
		return fmt.Errorf("%w: quitting Word: %v", types.ErrApplicationFailure, err)
	}
	return nil
}

func (a *application) Release() {
	a.docs.Release()
	a.disp.Release()
	ole.CoUninitialize()
	runtime.UnlockOSThread()
}

type document struct {
	disp *ole.IDispatch
	path string
}

func (d *document) SaveAsPDF(path string) error {
	if _, err := oleutil.CallMethod(d.disp, "SaveAs", path, wdFormatPDF); err != nil {
		return fmt.Errorf("%w: saving %s as %s: %v", types.ErrApplicationFailure, d.path, path, err)
	}
	return nil
}

func (d *document) Close() error {
	defer d.disp.Release()
	if _, err := oleutil.CallMethod(d.disp, "Close", wdDoNotSaveChanges); err != nil {
		return fmt.Errorf("%w: closing %s: %v", types.ErrApplicationFailure, d.path, err)
	}
	return nil
}
