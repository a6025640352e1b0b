package encoding

import (
	"fmt"
	"io"
	"strings"
)

// Topic level separator and wildcard characters per MQTT 4.7.
const (
	LevelSep     = '/'
	MatchAllChar = '#'
	MatchOneChar = '+'
)

// TopicName is a validated topic name as used by PUBLISH packets and
// will messages: UTF-8 with no wildcard characters and no NUL.
type TopicName struct {
	value string
}

// NewTopicName validates value as a topic name.
func NewTopicName(value string) (TopicName, error) {
	if topicNameInvalid(value) {
		return TopicName{}, fmt.Errorf("%w: %q", ErrInvalidTopicName, value)
	}
	return TopicName{value: value}, nil
}

func topicNameInvalid(value string) bool {
	return strings.ContainsAny(value, "+#\x00")
}

// ReadTopicName reads a length-prefixed string and validates it as a
// topic name.
func ReadTopicName(r io.Reader) (TopicName, error) {
	s, err := ReadString(r)
	if err != nil {
		return TopicName{}, err
	}
	return NewTopicName(s)
}

func (t TopicName) String() string {
	return t.value
}

// Len returns the byte length of the topic name.
func (t TopicName) Len() int {
	return len(t.value)
}

// TopicFilter is a validated topic filter as used by SUBSCRIBE and
// UNSUBSCRIBE packets. '#' may appear only as the final character and
// only as a whole level; '+' may appear only as a whole level; NUL is
// forbidden.
type TopicFilter struct {
	value string
}

// NewTopicFilter validates value as a topic filter.
func NewTopicFilter(value string) (TopicFilter, error) {
	if topicFilterInvalid(value) {
		return TopicFilter{}, fmt.Errorf("%w: %q", ErrInvalidTopicFilter, value)
	}
	return TopicFilter{value: value}, nil
}

func topicFilterInvalid(value string) bool {
	levels := strings.Split(value, string(LevelSep))
	for i, level := range levels {
		if strings.ContainsRune(level, 0) {
			return true
		}
		if strings.ContainsRune(level, MatchAllChar) {
			// '#' must be the whole level, and the last one
			if level != string(MatchAllChar) || i != len(levels)-1 {
				return true
			}
		}
		if strings.ContainsRune(level, MatchOneChar) && level != string(MatchOneChar) {
			return true
		}
	}
	return false
}

// ReadTopicFilter reads a length-prefixed string and validates it as a
// topic filter.
func ReadTopicFilter(r io.Reader) (TopicFilter, error) {
	s, err := ReadString(r)
	if err != nil {
		return TopicFilter{}, err
	}
	return NewTopicFilter(s)
}

func (t TopicFilter) String() string {
	return t.value
}

// Len returns the byte length of the topic filter.
func (t TopicFilter) Len() int {
	return len(t.value)
}
