package webos

import (
	"strings"
	"testing"
)

func TestErrorMessages_MentionKeyDetails(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want []string
	}{
		{"InvalidArgumentError", &InvalidArgumentError{Command: "setVolume", Reason: "out of range"}, []string{"setVolume", "out of range"}},
		{"NotConnectedError", &NotConnectedError{State: StateClosed}, []string{"closed"}},
		{"ConnectionClosedError", &ConnectionClosedError{Reason: "eof"}, []string{"eof"}},
		{"TimeoutError", &TimeoutError{RequestID: "7", URI: "ssap://tv/channelUp"}, []string{"7", "ssap://tv/channelUp"}},
		{"CommandFailedError", &CommandFailedError{URI: "ssap://system/turnOff", ErrorCode: "403", ErrorText: "denied"}, []string{"ssap://system/turnOff", "403", "denied"}},
		{"ValidationFailedError", &ValidationFailedError{URI: "ssap://audio/getMute", Reason: "missing field"}, []string{"ssap://audio/getMute", "missing field"}},
		{"RegistrationFailedError", &RegistrationFailedError{Reason: "declined"}, []string{"declined"}},
		{"AlreadySubscribedError", &AlreadySubscribedError{Command: "getVolume"}, []string{"getVolume"}},
		{"NotSubscribedError", &NotSubscribedError{Command: "getVolume"}, []string{"getVolume"}},
		{"NotSubscribableError", &NotSubscribableError{Command: "setVolume"}, []string{"setVolume"}},
		{"CertificateMismatchError", &CertificateMismatchError{Host: "tv.lan", PinnedSHA256: "aa", ObservedSHA256: "bb"}, []string{"tv.lan", "aa", "bb"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := tc.err.Error()
			for _, want := range tc.want {
				if !strings.Contains(msg, want) {
					t.Errorf("Error() = %q, want it to contain %q", msg, want)
				}
			}
		})
	}
}

func TestCommandFailedError_DegradesGracefullyWithoutDetails(t *testing.T) {
	err := &CommandFailedError{URI: "ssap://tv/channelUp"}
	if !strings.Contains(err.Error(), "ssap://tv/channelUp") {
		t.Errorf("Error() = %q, want it to still mention the URI", err.Error())
	}
}
