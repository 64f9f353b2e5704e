//go:build linux

package device

import (
	"github.com/sirupsen/logrus"

	"github.com/dshills/keyremap/internal/input/key"
)

type platformOpener struct{}

func (platformOpener) openInput(path string, log logrus.FieldLogger) (InputDevice, error) {
	p, err := OpenPhysical(path, log)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (platformOpener) openOutput(backend Backend, name string, codes []key.Code) (OutputDevice, error) {
	switch backend {
	case BackendUinput:
		kbd, err := CreateUinputKeyboard(name)
		if err != nil {
			return nil, err
		}
		return kbd, nil
	case BackendEvdev:
		v, err := CreateVirtual(name, codes)
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, ErrUnknownBackend
	}
}
