package services

import (
	"github.com/sirupsen/logrus"

	"github.com/blogem/record-engine/models"
)

// opState is a step of a single request. Failed and Done are terminal.
type opState string

const (
	stateValidating   opState = "validating"
	stateComputing    opState = "computing"
	statePersisting   opState = "persisting"
	stateAuditLogging opState = "audit_logging"
	stateDone         opState = "done"
	stateFailed       opState = "failed"
)

// operation tracks and logs the state transitions of one facade call
type operation struct {
	state  opState
	logger logrus.FieldLogger
}

func (s *recordService) begin(name string, id int64) *operation {
	fields := logrus.Fields{"operation": name}
	if id != 0 {
		fields["record_id"] = id
	}
	op := &operation{logger: s.logger.WithFields(fields)}
	op.enter(stateValidating)
	return op
}

func (op *operation) enter(state opState) {
	op.state = state
	op.logger.WithField("state", state).Debug("Operation state")
}

func (op *operation) withID(id int64) *operation {
	op.logger = op.logger.WithField("record_id", id)
	return op
}

func (op *operation) done() {
	op.enter(stateDone)
}

// fail moves the operation to Failed and returns err unchanged
func (op *operation) fail(err error) error {
	from := op.state
	op.state = stateFailed

	entry := op.logger.WithFields(logrus.Fields{"state": stateFailed, "from": from}).WithError(err)
	if models.KindOf(err).UserCorrectable() {
		entry.Info("Operation rejected")
	} else {
		entry.Warn("Operation failed")
	}
	return err
}
