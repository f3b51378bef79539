package webos

import "encoding/json"

// rawModel is embedded by every value type in this file: each wraps the
// TV's raw JSON payload and exposes a stable accessor surface over it
// rather than a hand-maintained struct per TV firmware revision.
type rawModel struct {
	raw map[string]interface{}
}

func newRawModel(payload json.RawMessage) rawModel {
	var m map[string]interface{}
	_ = json.Unmarshal(payload, &m)
	if m == nil {
		m = map[string]interface{}{}
	}
	return rawModel{raw: m}
}

func (r rawModel) str(key string) string {
	if v, ok := r.raw[key].(string); ok {
		return v
	}
	return ""
}

func (r rawModel) boolean(key string) bool {
	if v, ok := r.raw[key].(bool); ok {
		return v
	}
	return false
}

// Raw returns the underlying decoded payload for fields this accessor
// surface does not cover.
func (r rawModel) Raw() map[string]interface{} {
	return r.raw
}

// Application describes one entry from listLaunchPoints / launch.
type Application struct {
	rawModel
}

// NewApplication wraps a raw SSAP application payload.
func NewApplication(payload json.RawMessage) Application {
	return Application{newRawModel(payload)}
}

func (a Application) ID() string    { return a.str("id") }
func (a Application) Title() string  { return a.str("title") }
func (a Application) Icon() string   { return a.str("icon") }
func (a Application) Removable() bool {
	return a.boolean("removable")
}

// InputSource describes one entry from getExternalInputList.
type InputSource struct {
	rawModel
}

// NewInputSource wraps a raw SSAP input-source payload.
func NewInputSource(payload json.RawMessage) InputSource {
	return InputSource{newRawModel(payload)}
}

func (i InputSource) ID() string      { return i.str("id") }
func (i InputSource) Label() string   { return i.str("label") }
func (i InputSource) Icon() string    { return i.str("icon") }
func (i InputSource) Connected() bool { return i.boolean("connected") }

// AudioOutputSource describes one entry from getSoundOutput / changeSoundOutput.
type AudioOutputSource struct {
	rawModel
}

// NewAudioOutputSource wraps a raw SSAP sound-output payload.
func NewAudioOutputSource(payload json.RawMessage) AudioOutputSource {
	return AudioOutputSource{newRawModel(payload)}
}

func (a AudioOutputSource) SoundOutput() string { return a.str("soundOutput") }

// SystemInfo wraps the payload returned by system/getSystemInfo.
type SystemInfo struct {
	rawModel
}

// NewSystemInfo wraps a raw SSAP system-info payload.
func NewSystemInfo(payload json.RawMessage) SystemInfo {
	return SystemInfo{newRawModel(payload)}
}

func (s SystemInfo) ModelName() string   { return s.str("modelName") }
func (s SystemInfo) FirmwareVersion() string {
	if v, ok := s.raw["firmware"].(string); ok {
		return v
	}
	return s.str("version")
}

// Channel describes one entry from getCurrentChannel / openChannel.
type Channel struct {
	rawModel
}

// NewChannel wraps a raw SSAP channel payload.
func NewChannel(payload json.RawMessage) Channel {
	return Channel{newRawModel(payload)}
}

func (c Channel) ChannelID() string   { return c.str("channelId") }
func (c Channel) ChannelName() string { return c.str("channelName") }
func (c Channel) ChannelNumber() string {
	return c.str("channelNumber")
}

// ForegroundAppInfo wraps the payload returned by getForegroundAppInfo.
type ForegroundAppInfo struct {
	rawModel
}

// NewForegroundAppInfo wraps a raw SSAP foreground-app payload.
func NewForegroundAppInfo(payload json.RawMessage) ForegroundAppInfo {
	return ForegroundAppInfo{newRawModel(payload)}
}

func (f ForegroundAppInfo) AppID() string      { return f.str("appId") }
func (f ForegroundAppInfo) WindowID() string   { return f.str("windowId") }
func (f ForegroundAppInfo) ProcessID() string  { return f.str("processId") }
