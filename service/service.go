// Package service runs the interval pipeline: validate, parse, merge, subtract and format.
package service

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/menmos/intervals-go/interval"
	"github.com/menmos/intervals-go/payload"
)

const (
	includesField = "includes"
	excludesField = "excludes"
)

// Service processes interval requests. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	log logrus.FieldLogger
	now func() time.Time
}

// New returns a Service logging to log. A nil log uses the standard logrus logger.
func New(log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{log: log, now: time.Now}
}

// Process computes the integers covered by the request's includes and not by its
// excludes. Validation of both lists happens before any parsing; all returned
// errors satisfy interval.IsInputError.
func (s *Service) Process(req *payload.IntervalRequest) (*payload.IntervalResponse, error) {
	start := s.now()

	if req == nil {
		req = payload.NewIntervalRequest()
	}

	if err := interval.Validate(req.Includes).Err(includesField); err != nil {
		s.log.WithField("field", includesField).WithError(err).Debug("validation failed")
		return nil, err
	}
	if err := interval.Validate(req.Excludes).Err(excludesField); err != nil {
		s.log.WithField("field", excludesField).WithError(err).Debug("validation failed")
		return nil, err
	}

	includes, err := interval.ParseMany(req.Includes)
	if err != nil {
		s.log.WithField("field", includesField).WithError(err).Debug("parse failed")
		return nil, err
	}
	excludes, err := interval.ParseMany(req.Excludes)
	if err != nil {
		s.log.WithField("field", excludesField).WithError(err).Debug("parse failed")
		return nil, err
	}

	result := interval.FormatAll(interval.Process(includes, excludes))

	elapsed := s.now().Sub(start)
	return &payload.IntervalResponse{
		Result:        result,
		ExecutionTime: float64(elapsed) / float64(time.Millisecond),
	}, nil
}
