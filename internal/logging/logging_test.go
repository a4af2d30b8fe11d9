package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	defer Set(nil)

	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetLevel(logrus.DebugLevel)
	Set(l)

	L().WithField("circles", 3).Info("packed")
	assert.Contains(t, buf.String(), "circles=3")

	buf.Reset()
	Set(nil)
	L().Info("hidden")
	assert.Empty(t, buf.String())
}
