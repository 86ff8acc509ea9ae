package perrors

import (
	"errors"
	"fmt"
)

// intakeError is an error caused by attempting to take in stand data. Either
// the input could not be understood or it specifies a stand that is
// impossible or not allowed.
//
// intakeError includes a human-readable message to show to an operator as
// well as a typical more technical "error message" style message.
type intakeError struct {
	msg   string
	human string
	wrap  error
}

func (e *intakeError) Error() string {
	return e.msg
}

// HumanMessage shows the message that should be displayed to the operator to
// describe the error.
func (e *intakeError) HumanMessage() string {
	return e.human
}

// Unwrap gives the error that the intakeError wraps, if it wraps one.
func (e *intakeError) Unwrap() error {
	return e.wrap
}

// Intake returns a new intake error that has both the message to show the
// operator and the technical description of the error.
func Intake(human, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got IntakeError(%q)", human)
	}
	return &intakeError{
		msg:   technical,
		human: human,
	}
}

// Intakef returns a new intake error that has a message to show to the
// operator and an automatically generated Error() description. The arguments
// given are the format string and the arguments to the format string.
func Intakef(humanFormat string, a ...interface{}) error {
	humanMessage := fmt.Sprintf(humanFormat, a...)
	return Intake(humanMessage, "")
}

// WrapIntake returns a new intake error that has both the message to show the
// operator and the technical description of the error, and that wraps the
// given error.
func WrapIntake(e error, human, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got IntakeError(%q)", human)
	}
	return &intakeError{
		msg:   technical,
		human: human,
		wrap:  e,
	}
}

// WrapIntakef returns a new intake error that has both the message to show
// the operator and an automatically generated Error() description, and that
// wraps the given error. The arguments given are the error to wrap, then the
// format followed by its arguments.
func WrapIntakef(e error, humanFormat string, a ...interface{}) error {
	humanMessage := fmt.Sprintf(humanFormat, a...)
	return WrapIntake(e, humanMessage, "")
}

// HumanMessage gets the message to display to the console for the given
// error. If one of the types defined in perrors is anywhere in err's wrap
// chain, its human message is returned. Otherwise, err.Error() is returned.
func HumanMessage(err error) string {
	var intErr *intakeError
	if errors.As(err, &intErr) {
		return intErr.HumanMessage()
	}
	return err.Error()
}
