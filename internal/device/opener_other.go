//go:build !linux

package device

import (
	"github.com/sirupsen/logrus"

	"github.com/dshills/keyremap/internal/input/key"
)

type platformOpener struct{}

func (platformOpener) openInput(string, logrus.FieldLogger) (InputDevice, error) {
	return nil, ErrUnsupported
}

func (platformOpener) openOutput(Backend, string, []key.Code) (OutputDevice, error) {
	return nil, ErrUnsupported
}
