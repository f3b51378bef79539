package webos

import "testing"

func TestApplication_Accessors(t *testing.T) {
	app := NewApplication([]byte(`{"id":"com.webos.app.netflix","title":"Netflix","icon":"icon.png","removable":true}`))
	if app.ID() != "com.webos.app.netflix" {
		t.Errorf("ID() = %q", app.ID())
	}
	if app.Title() != "Netflix" {
		t.Errorf("Title() = %q", app.Title())
	}
	if !app.Removable() {
		t.Error("Removable() = false, want true")
	}
}

func TestApplication_MissingFieldsAreZeroValues(t *testing.T) {
	app := NewApplication([]byte(`{}`))
	if app.ID() != "" || app.Title() != "" {
		t.Errorf("expected empty strings for missing fields, got ID=%q Title=%q", app.ID(), app.Title())
	}
	if app.Removable() {
		t.Error("Removable() on an empty payload should default to false")
	}
}

func TestApplication_MalformedPayloadDoesNotPanic(t *testing.T) {
	app := NewApplication([]byte(`not json`))
	if app.ID() != "" {
		t.Errorf("ID() = %q, want empty on malformed payload", app.ID())
	}
}

func TestInputSource_Accessors(t *testing.T) {
	in := NewInputSource([]byte(`{"id":"HDMI_1","label":"HDMI 1","connected":true}`))
	if in.ID() != "HDMI_1" || in.Label() != "HDMI 1" || !in.Connected() {
		t.Errorf("unexpected InputSource: %+v", in.Raw())
	}
}

func TestSystemInfo_FirmwareFallsBackToVersion(t *testing.T) {
	si := NewSystemInfo([]byte(`{"modelName":"OLED55C1","version":"03.20.05"}`))
	if si.ModelName() != "OLED55C1" {
		t.Errorf("ModelName() = %q", si.ModelName())
	}
	if si.FirmwareVersion() != "03.20.05" {
		t.Errorf("FirmwareVersion() = %q, want fallback to version field", si.FirmwareVersion())
	}
}

func TestChannel_Accessors(t *testing.T) {
	ch := NewChannel([]byte(`{"channelId":"1_2","channelName":"BBC One","channelNumber":"1"}`))
	if ch.ChannelID() != "1_2" || ch.ChannelName() != "BBC One" || ch.ChannelNumber() != "1" {
		t.Errorf("unexpected Channel: %+v", ch.Raw())
	}
}

func TestForegroundAppInfo_Accessors(t *testing.T) {
	info := NewForegroundAppInfo([]byte(`{"appId":"com.webos.app.hdmi1","windowId":"w1","processId":"p1"}`))
	if info.AppID() != "com.webos.app.hdmi1" || info.WindowID() != "w1" || info.ProcessID() != "p1" {
		t.Errorf("unexpected ForegroundAppInfo: %+v", info.Raw())
	}
}
