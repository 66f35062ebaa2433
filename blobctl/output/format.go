// Copyright (c) 2025 ZKForge Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package output

import (
	"encoding/json"
	"fmt"
	"log"
)

// Format is the target of output-format flag
var Format string

// ErrorCode is the code of error
type ErrorCode int

const (
	// UndefinedError used when an error can't be classified
	UndefinedError ErrorCode = iota
	// RuntimeError used when an error occurs in runtime
	RuntimeError
	// NetworkError used when a network error happens
	NetworkError
	// ValidationError used when validation is not passed
	ValidationError
	// SerializationError used when marshal or unmarshal meets error
	SerializationError
	// ReadFileError used when error occurs during reading a file
	ReadFileError
	// WriteFileError used when error occurs during writing a file
	WriteFileError
	// FlagError used when invalid flag is set
	FlagError
	// ConvertError used when fail to convert data
	ConvertError
	// InputError used when error about input occurs
	InputError
	// ConfigError used when an error about config occurs
	ConfigError
)

// MessageType marks the type of output message
type MessageType int

const (
	// Result represents the result of a command
	Result MessageType = iota
	// Query represents request for answer of certain question
	Query
	// Error represents error occurred when running a command
	Error
)

// Output is used for format output
type Output struct {
	MessageType MessageType `json:"messageType"`
	Message     Message     `json:"message"`
}

// Message is the message part of output
type Message interface {
	String() string
}

// ErrorMessage is the struct of an Error output
type ErrorMessage struct {
	Code ErrorCode `json:"code"`
	Info string    `json:"info"`
}

func (m *ErrorMessage) String() string {
	if Format == "" {
		return fmt.Sprintf("%d, %s", m.Code, m.Info)
	}
	return FormatString(Error, m)
}

// Error implements error interface
func (m ErrorMessage) Error() string {
	return fmt.Sprintf("%d, %s", m.Code, m.Info)
}

// StringMessage is the Message for string
type StringMessage string

func (m StringMessage) String() string {
	if Format == "" {
		return string(m)
	}
	return FormatString(Result, m)
}

// Query prints query message
func (m StringMessage) Query() string {
	if Format == "" {
		return string(m)
	}
	return FormatString(Query, m)
}

// FormatString returns Output as string in certain format
func FormatString(t MessageType, m Message) string {
	out := Output{
		MessageType: t,
		Message:     m,
	}
	switch Format {
	default: // default is json
		return JSONString(out)
	}
}

// JSONString returns json string for message
func JSONString(out interface{}) string {
	byteAsJSON, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Panic(err)
	}
	return string(byteAsJSON)
}

// NewError returns a golang error that contains an ErrorMessage. Passing a
// zero code keeps the previous error's code instead of overriding it; when
// there is no previous error, info must not be empty.
func NewError(code ErrorCode, info string, pre error) error {
	if pre == nil {
		return ErrorMessage{Code: code, Info: info}
	}
	message, ok := pre.(ErrorMessage)
	if ok {
		if code != 0 {
			// override error code
			message.Code = code
		}
		if len(info) != 0 {
			message.Info = fmt.Sprintf("%s: %s", info, message.Info)
		}
	} else {
		message = ErrorMessage{Code: code, Info: fmt.Sprintf("%s: %s", info, pre.Error())}
	}
	return message
}

// PrintError prints Error Message in format, only used at top layer of a command
func PrintError(err error) error {
	if err == nil {
		return nil
	}
	newErr := NewError(0, "", err)
	if Format == "" {
		return newErr
	}
	message := newErr.(ErrorMessage)
	fmt.Println(message.String())
	return nil
}

// PrintResult prints result message in format
func PrintResult(result string) {
	message := StringMessage(result)
	fmt.Println(message.String())
}

// PrintQuery prints query message in format
func PrintQuery(query string) {
	message := StringMessage(query)
	fmt.Println(message.Query())
}
