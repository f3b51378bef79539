package webos

import (
	"encoding/json"
	"strings"
)

// responseValidator checks the shape of a command's response payload and
// reports CommandFailedError / ValidationFailedError as appropriate. It is
// run before any return_transform.
type responseValidator func(uri string, payload json.RawMessage) error

// returnTransform maps a validated response payload into the caller-facing
// value (an Application, an AudioOutputSource, ...). Commands without one
// surface the raw payload.
type returnTransform func(uri string, payload json.RawMessage) (interface{}, error)

// commandDescriptor is the declarative description of one SSAP command:
// its URI, whether it can be subscribed to, how to judge a reply, and how
// to shape that reply for the caller. Every control object method in
// controls.go is a thin, mechanically derived wrapper around a lookup into
// one of the tables below plus a call through Connection.
type commandDescriptor struct {
	URI          string
	Subscribable bool
	Validate     responseValidator
	Transform    returnTransform
}

func (d *commandDescriptor) validate(uri string, payload json.RawMessage) error {
	if d.Validate != nil {
		return d.Validate(uri, payload)
	}
	return defaultValidator(uri, payload)
}

func (d *commandDescriptor) transform(uri string, payload json.RawMessage) (interface{}, error) {
	if d.Transform != nil {
		return d.Transform(uri, payload)
	}
	var raw map[string]interface{}
	_ = json.Unmarshal(payload, &raw)
	return raw, nil
}

// truthy mirrors the TV's own notion of a successful returnValue: a JSON
// true, or the string "true" (some firmware revisions stringify it).
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(t, "true")
	default:
		return false
	}
}

// defaultValidator accepts any payload whose returnValue is truthy and
// otherwise fails with CommandFailedError, carrying whatever error details
// the TV supplied.
func defaultValidator(uri string, payload json.RawMessage) error {
	var resp genericResponse
	_ = json.Unmarshal(payload, &resp)
	if truthy(resp.ReturnValue) {
		return nil
	}
	return &CommandFailedError{URI: uri, ErrorCode: resp.ErrorCode, ErrorText: resp.ErrorText}
}

// boolFieldValidator builds a stricter validator requiring a named field
// to be present and boolean-typed, in addition to the default returnValue
// check (e.g. getMute's "mute" field).
func boolFieldValidator(field string) responseValidator {
	return func(uri string, payload json.RawMessage) error {
		var m map[string]interface{}
		_ = json.Unmarshal(payload, &m)
		if _, ok := m[field].(bool); !ok {
			return &ValidationFailedError{URI: uri, Reason: "expected boolean field \"" + field + "\""}
		}
		return defaultValidator(uri, payload)
	}
}

// --- return transforms ---

func transformApplicationList(_ string, payload json.RawMessage) (interface{}, error) {
	var wrap struct {
		LaunchPoints []json.RawMessage `json:"launchPoints"`
	}
	_ = json.Unmarshal(payload, &wrap)
	apps := make([]Application, len(wrap.LaunchPoints))
	for i, raw := range wrap.LaunchPoints {
		apps[i] = NewApplication(raw)
	}
	return apps, nil
}

func transformForegroundAppInfo(_ string, payload json.RawMessage) (interface{}, error) {
	return NewForegroundAppInfo(payload), nil
}

func transformInputSourceList(_ string, payload json.RawMessage) (interface{}, error) {
	var wrap struct {
		Devices []json.RawMessage `json:"devices"`
	}
	_ = json.Unmarshal(payload, &wrap)
	sources := make([]InputSource, len(wrap.Devices))
	for i, raw := range wrap.Devices {
		sources[i] = NewInputSource(raw)
	}
	return sources, nil
}

func transformAudioOutputSource(_ string, payload json.RawMessage) (interface{}, error) {
	return NewAudioOutputSource(payload), nil
}

func transformSystemInfo(_ string, payload json.RawMessage) (interface{}, error) {
	return NewSystemInfo(payload), nil
}

func transformChannel(_ string, payload json.RawMessage) (interface{}, error) {
	return NewChannel(payload), nil
}

// --- command tables, one per control object, keyed by the short name used
// both as the Go method name's lowerCamel counterpart and as the
// subscription-registry key scoped to that control object. ---

var audioCommands = map[string]*commandDescriptor{
	"setVolume":         {URI: "ssap://audio/setVolume"},
	"getVolume":         {URI: "ssap://audio/getVolume", Subscribable: true},
	"volumeUp":          {URI: "ssap://audio/volumeUp"},
	"volumeDown":        {URI: "ssap://audio/volumeDown"},
	"setMute":           {URI: "ssap://audio/setMute"},
	"getMute":           {URI: "ssap://audio/getMute", Subscribable: true, Validate: boolFieldValidator("mute")},
	"getSoundOutput":    {URI: "ssap://audio/getSoundOutput", Subscribable: true, Transform: transformAudioOutputSource},
	"changeSoundOutput": {URI: "ssap://audio/changeSoundOutput"},
}

var mediaCommands = map[string]*commandDescriptor{
	"play":        {URI: "ssap://media.controls/play"},
	"pause":       {URI: "ssap://media.controls/pause"},
	"stop":        {URI: "ssap://media.controls/stop"},
	"rewind":      {URI: "ssap://media.controls/rewind"},
	"fastForward": {URI: "ssap://media.controls/fastForward"},
}

var appCommands = map[string]*commandDescriptor{
	"listLaunchPoints":     {URI: "ssap://com.webos.applicationManager/listLaunchPoints", Transform: transformApplicationList},
	"launch":               {URI: "ssap://com.webos.applicationManager/launch"},
	"getForegroundAppInfo": {URI: "ssap://com.webos.applicationManager/getForegroundAppInfo", Subscribable: true, Transform: transformForegroundAppInfo},
}

var tvCommands = map[string]*commandDescriptor{
	"getCurrentChannel":    {URI: "ssap://tv/getCurrentChannel", Subscribable: true, Transform: transformChannel},
	"channelUp":            {URI: "ssap://tv/channelUp"},
	"channelDown":          {URI: "ssap://tv/channelDown"},
	"openChannel":          {URI: "ssap://tv/openChannel"},
	"getExternalInputList": {URI: "ssap://tv/getExternalInputList", Transform: transformInputSourceList},
	"switchInput":          {URI: "ssap://tv/switchInput"},
}

var systemCommands = map[string]*commandDescriptor{
	"turnOff":       {URI: "ssap://system/turnOff"},
	"createToast":   {URI: "ssap://system.notifications/createToast"},
	"launcher":      {URI: "ssap://system.launcher/launch"},
	"getSystemInfo": {URI: "ssap://system/getSystemInfo", Transform: transformSystemInfo},
	"getPowerState": {URI: "ssap://com.webos.service.power/power/getPowerState", Subscribable: true},
	"turnOn":        {URI: "ssap://com.webos.service.power/turnOn"},
}

var inputCommands = map[string]*commandDescriptor{
	"getPointerInputSocket": {URI: "ssap://com.webos.service.networkinput/getPointerInputSocket"},
}
