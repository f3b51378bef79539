package webos

import (
	"context"
	"fmt"
)

// call runs one request/response command from table through conn: send,
// validate, transform. It is the mechanical core every control-object
// method below wires typed parameters into.
func call(ctx context.Context, conn *Connection, name string, table map[string]*commandDescriptor, payload interface{}) (interface{}, error) {
	d, ok := table[name]
	if !ok {
		return nil, &InvalidArgumentError{Command: name, Reason: "unknown command"}
	}
	raw, err := conn.SendRequest(ctx, d.URI, payload)
	if err != nil {
		return nil, err
	}
	if err := d.validate(d.URI, raw); err != nil {
		return nil, err
	}
	return d.transform(d.URI, raw)
}

func asMap(v interface{}) map[string]interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}

func asInt(v interface{}) int {
	if f, ok := v.(float64); ok {
		return int(f)
	}
	return 0
}

func asBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

// AudioControl wraps the TV's ssap://audio namespace.
type AudioControl struct {
	conn *Connection
	subs *subscriptionSet
}

func newAudioControl(conn *Connection) *AudioControl {
	return &AudioControl{conn: conn, subs: newSubscriptionSet(conn)}
}

// SetVolume sets the absolute output volume, 0-100.
func (a *AudioControl) SetVolume(ctx context.Context, volume int) error {
	if volume < 0 || volume > 100 {
		return &InvalidArgumentError{Command: "setVolume", Reason: fmt.Sprintf("volume must be between 0 and 100, got %d", volume)}
	}
	_, err := call(ctx, a.conn, "setVolume", audioCommands, map[string]interface{}{"volume": volume})
	return err
}

// GetVolume returns the current output volume and mute state.
func (a *AudioControl) GetVolume(ctx context.Context) (volume int, muted bool, err error) {
	v, err := call(ctx, a.conn, "getVolume", audioCommands, nil)
	if err != nil {
		return 0, false, err
	}
	m := asMap(v)
	return asInt(m["volume"]), asBool(m["muted"]), nil
}

// VolumeUp raises the output volume by one step.
func (a *AudioControl) VolumeUp(ctx context.Context) error {
	_, err := call(ctx, a.conn, "volumeUp", audioCommands, nil)
	return err
}

// VolumeDown lowers the output volume by one step.
func (a *AudioControl) VolumeDown(ctx context.Context) error {
	_, err := call(ctx, a.conn, "volumeDown", audioCommands, nil)
	return err
}

// SetMute mutes or unmutes the output.
func (a *AudioControl) SetMute(ctx context.Context, mute bool) error {
	_, err := call(ctx, a.conn, "setMute", audioCommands, map[string]interface{}{"mute": mute})
	return err
}

// GetMute returns the current mute state.
func (a *AudioControl) GetMute(ctx context.Context) (bool, error) {
	v, err := call(ctx, a.conn, "getMute", audioCommands, nil)
	if err != nil {
		return false, err
	}
	return asBool(asMap(v)["mute"]), nil
}

// GetSoundOutput returns the active sound output route (tv_speaker, external_arc, ...).
func (a *AudioControl) GetSoundOutput(ctx context.Context) (AudioOutputSource, error) {
	v, err := call(ctx, a.conn, "getSoundOutput", audioCommands, nil)
	if err != nil {
		return AudioOutputSource{}, err
	}
	return v.(AudioOutputSource), nil
}

// ChangeSoundOutput switches the active sound output route.
func (a *AudioControl) ChangeSoundOutput(ctx context.Context, output string) error {
	if output == "" {
		return &InvalidArgumentError{Command: "changeSoundOutput", Reason: "output must not be empty"}
	}
	_, err := call(ctx, a.conn, "changeSoundOutput", audioCommands, map[string]interface{}{"output": output})
	return err
}

// SubscribeVolume streams volume/mute changes until UnsubscribeVolume is
// called or the connection drops (the latter reported through err).
func (a *AudioControl) SubscribeVolume(ctx context.Context, handler func(volume int, muted bool, err error)) error {
	return a.subs.subscribe(ctx, "getVolume", audioCommands["getVolume"], func(value interface{}, err error) {
		if err != nil {
			handler(0, false, err)
			return
		}
		m := asMap(value)
		handler(asInt(m["volume"]), asBool(m["muted"]), nil)
	})
}

// UnsubscribeVolume ends a subscription started by SubscribeVolume.
func (a *AudioControl) UnsubscribeVolume() error {
	return a.subs.unsubscribe("getVolume", audioCommands["getVolume"])
}

// SubscribeMute streams mute-state changes.
func (a *AudioControl) SubscribeMute(ctx context.Context, handler func(muted bool, err error)) error {
	return a.subs.subscribe(ctx, "getMute", audioCommands["getMute"], func(value interface{}, err error) {
		if err != nil {
			handler(false, err)
			return
		}
		handler(asBool(asMap(value)["mute"]), nil)
	})
}

// UnsubscribeMute ends a subscription started by SubscribeMute.
func (a *AudioControl) UnsubscribeMute() error {
	return a.subs.unsubscribe("getMute", audioCommands["getMute"])
}

// SubscribeSoundOutput streams sound-output route changes.
func (a *AudioControl) SubscribeSoundOutput(ctx context.Context, handler func(AudioOutputSource, error)) error {
	return a.subs.subscribe(ctx, "getSoundOutput", audioCommands["getSoundOutput"], func(value interface{}, err error) {
		if err != nil {
			handler(AudioOutputSource{}, err)
			return
		}
		handler(value.(AudioOutputSource), nil)
	})
}

// UnsubscribeSoundOutput ends a subscription started by SubscribeSoundOutput.
func (a *AudioControl) UnsubscribeSoundOutput() error {
	return a.subs.unsubscribe("getSoundOutput", audioCommands["getSoundOutput"])
}

// MediaControl wraps the TV's ssap://media.controls namespace.
type MediaControl struct {
	conn *Connection
}

func newMediaControl(conn *Connection) *MediaControl { return &MediaControl{conn: conn} }

func (m *MediaControl) Play(ctx context.Context) error {
	_, err := call(ctx, m.conn, "play", mediaCommands, nil)
	return err
}

func (m *MediaControl) Pause(ctx context.Context) error {
	_, err := call(ctx, m.conn, "pause", mediaCommands, nil)
	return err
}

func (m *MediaControl) Stop(ctx context.Context) error {
	_, err := call(ctx, m.conn, "stop", mediaCommands, nil)
	return err
}

func (m *MediaControl) Rewind(ctx context.Context) error {
	_, err := call(ctx, m.conn, "rewind", mediaCommands, nil)
	return err
}

func (m *MediaControl) FastForward(ctx context.Context) error {
	_, err := call(ctx, m.conn, "fastForward", mediaCommands, nil)
	return err
}

// AppControl wraps the TV's ssap://com.webos.applicationManager namespace.
type AppControl struct {
	conn *Connection
	subs *subscriptionSet
}

func newAppControl(conn *Connection) *AppControl {
	return &AppControl{conn: conn, subs: newSubscriptionSet(conn)}
}

// ListLaunchPoints returns every installed, launchable application.
func (a *AppControl) ListLaunchPoints(ctx context.Context) ([]Application, error) {
	v, err := call(ctx, a.conn, "listLaunchPoints", appCommands, nil)
	if err != nil {
		return nil, err
	}
	return v.([]Application), nil
}

// Launch starts appID, optionally passing launch params the app understands.
func (a *AppControl) Launch(ctx context.Context, appID string, params map[string]interface{}) error {
	if appID == "" {
		return &InvalidArgumentError{Command: "launch", Reason: "appId must not be empty"}
	}
	payload := map[string]interface{}{"id": appID}
	if params != nil {
		payload["params"] = params
	}
	_, err := call(ctx, a.conn, "launch", appCommands, payload)
	return err
}

// GetForegroundAppInfo returns the currently foregrounded app.
func (a *AppControl) GetForegroundAppInfo(ctx context.Context) (ForegroundAppInfo, error) {
	v, err := call(ctx, a.conn, "getForegroundAppInfo", appCommands, nil)
	if err != nil {
		return ForegroundAppInfo{}, err
	}
	return v.(ForegroundAppInfo), nil
}

// SubscribeForegroundApp streams foreground-app changes.
func (a *AppControl) SubscribeForegroundApp(ctx context.Context, handler func(ForegroundAppInfo, error)) error {
	return a.subs.subscribe(ctx, "getForegroundAppInfo", appCommands["getForegroundAppInfo"], func(value interface{}, err error) {
		if err != nil {
			handler(ForegroundAppInfo{}, err)
			return
		}
		handler(value.(ForegroundAppInfo), nil)
	})
}

// UnsubscribeForegroundApp ends a subscription started by SubscribeForegroundApp.
func (a *AppControl) UnsubscribeForegroundApp() error {
	return a.subs.unsubscribe("getForegroundAppInfo", appCommands["getForegroundAppInfo"])
}

// TVControl wraps the TV's ssap://tv namespace (channel/input switching).
type TVControl struct {
	conn *Connection
	subs *subscriptionSet
}

func newTVControl(conn *Connection) *TVControl {
	return &TVControl{conn: conn, subs: newSubscriptionSet(conn)}
}

func (t *TVControl) GetCurrentChannel(ctx context.Context) (Channel, error) {
	v, err := call(ctx, t.conn, "getCurrentChannel", tvCommands, nil)
	if err != nil {
		return Channel{}, err
	}
	return v.(Channel), nil
}

func (t *TVControl) ChannelUp(ctx context.Context) error {
	_, err := call(ctx, t.conn, "channelUp", tvCommands, nil)
	return err
}

func (t *TVControl) ChannelDown(ctx context.Context) error {
	_, err := call(ctx, t.conn, "channelDown", tvCommands, nil)
	return err
}

// OpenChannel tunes directly to channelID.
func (t *TVControl) OpenChannel(ctx context.Context, channelID string) error {
	if channelID == "" {
		return &InvalidArgumentError{Command: "openChannel", Reason: "channelId must not be empty"}
	}
	_, err := call(ctx, t.conn, "openChannel", tvCommands, map[string]interface{}{"channelId": channelID})
	return err
}

// GetExternalInputList returns every external input (HDMI, AV, ...).
func (t *TVControl) GetExternalInputList(ctx context.Context) ([]InputSource, error) {
	v, err := call(ctx, t.conn, "getExternalInputList", tvCommands, nil)
	if err != nil {
		return nil, err
	}
	return v.([]InputSource), nil
}

// SwitchInput switches the active external input by its InputSource.ID().
func (t *TVControl) SwitchInput(ctx context.Context, inputID string) error {
	if inputID == "" {
		return &InvalidArgumentError{Command: "switchInput", Reason: "inputId must not be empty"}
	}
	_, err := call(ctx, t.conn, "switchInput", tvCommands, map[string]interface{}{"inputId": inputID})
	return err
}

// SubscribeCurrentChannel streams channel changes.
func (t *TVControl) SubscribeCurrentChannel(ctx context.Context, handler func(Channel, error)) error {
	return t.subs.subscribe(ctx, "getCurrentChannel", tvCommands["getCurrentChannel"], func(value interface{}, err error) {
		if err != nil {
			handler(Channel{}, err)
			return
		}
		handler(value.(Channel), nil)
	})
}

// UnsubscribeCurrentChannel ends a subscription started by SubscribeCurrentChannel.
func (t *TVControl) UnsubscribeCurrentChannel() error {
	return t.subs.unsubscribe("getCurrentChannel", tvCommands["getCurrentChannel"])
}

// SystemControl wraps ssap://system, ssap://system.notifications,
// ssap://system.launcher and the webos power service.
type SystemControl struct {
	conn *Connection
	subs *subscriptionSet
}

func newSystemControl(conn *Connection) *SystemControl {
	return &SystemControl{conn: conn, subs: newSubscriptionSet(conn)}
}

func (s *SystemControl) TurnOff(ctx context.Context) error {
	_, err := call(ctx, s.conn, "turnOff", systemCommands, nil)
	return err
}

func (s *SystemControl) TurnOn(ctx context.Context) error {
	_, err := call(ctx, s.conn, "turnOn", systemCommands, nil)
	return err
}

// CreateToast pops a short on-screen notification.
func (s *SystemControl) CreateToast(ctx context.Context, message string) error {
	if message == "" {
		return &InvalidArgumentError{Command: "createToast", Reason: "message must not be empty"}
	}
	_, err := call(ctx, s.conn, "createToast", systemCommands, map[string]interface{}{"message": message})
	return err
}

// Launcher opens a system screen (e.g. "settings") rather than a user app.
func (s *SystemControl) Launcher(ctx context.Context, id string) error {
	if id == "" {
		return &InvalidArgumentError{Command: "launcher", Reason: "id must not be empty"}
	}
	_, err := call(ctx, s.conn, "launcher", systemCommands, map[string]interface{}{"id": id})
	return err
}

func (s *SystemControl) GetSystemInfo(ctx context.Context) (SystemInfo, error) {
	v, err := call(ctx, s.conn, "getSystemInfo", systemCommands, nil)
	if err != nil {
		return SystemInfo{}, err
	}
	return v.(SystemInfo), nil
}

// GetPowerState returns the TV's current power state string (e.g.
// "Active", "Active Standby", "Screen Off").
func (s *SystemControl) GetPowerState(ctx context.Context) (string, error) {
	v, err := call(ctx, s.conn, "getPowerState", systemCommands, nil)
	if err != nil {
		return "", err
	}
	state, _ := asMap(v)["state"].(string)
	return state, nil
}

// SubscribePowerState streams power-state changes.
func (s *SystemControl) SubscribePowerState(ctx context.Context, handler func(state string, err error)) error {
	return s.subs.subscribe(ctx, "getPowerState", systemCommands["getPowerState"], func(value interface{}, err error) {
		if err != nil {
			handler("", err)
			return
		}
		state, _ := asMap(value)["state"].(string)
		handler(state, nil)
	})
}

// UnsubscribePowerState ends a subscription started by SubscribePowerState.
func (s *SystemControl) UnsubscribePowerState() error {
	return s.subs.unsubscribe("getPowerState", systemCommands["getPowerState"])
}

// InputControl wraps ssap://com.webos.service.networkinput, the gateway to
// the secondary pointer/input socket (see inputsocket.go).
type InputControl struct {
	conn *Connection
}

func newInputControl(conn *Connection) *InputControl { return &InputControl{conn: conn} }

// GetPointerInputSocket returns the ws:// URL of the TV's secondary input
// socket, which DialInputSocket dials to send pointer/button events.
func (i *InputControl) GetPointerInputSocket(ctx context.Context) (string, error) {
	v, err := call(ctx, i.conn, "getPointerInputSocket", inputCommands, nil)
	if err != nil {
		return "", err
	}
	socketPath, _ := asMap(v)["socketPath"].(string)
	return socketPath, nil
}
