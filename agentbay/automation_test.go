package agentbay

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/agentbay/apis"
	"github.com/yuebing-yb/wuying-agentbay-sdk-sub000/internal/mcptools"
)

func TestUIElements(t *testing.T) {
	mock, args, name := recordingMock(t, `[{"bounds":"0,0,100,50","className":"Button","text":"OK","type":"clickable","resourceId":"btn_ok","index":1,"isParent":false}]`)
	ui := newTestSession(mock).UI()

	result, err := ui.GetClickableUIElements(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, result.Elements, 1)
	assert.Equal(t, "OK", result.Elements[0].Text)
	assert.Equal(t, "btn_ok", result.Elements[0].ResourceID)
	assert.Equal(t, mcptools.GetClickableUiElements, *name)
	assert.Equal(t, float64(DefaultUITimeout.Milliseconds()), (*args)["timeout_ms"])
}

func TestUIInput(t *testing.T) {
	mock, args, name := recordingMock(t, "")
	ui := newTestSession(mock).UI()
	ctx := context.Background()

	_, err := ui.SendKey(ctx, KeyCodeHome)
	require.NoError(t, err)
	assert.Equal(t, mcptools.SendKey, *name)
	assert.Equal(t, float64(KeyCodeHome), (*args)["key"])

	_, err = ui.Swipe(ctx, 10, 20, 30, 40, 0)
	require.NoError(t, err)
	assert.Equal(t, float64(300), (*args)["duration_ms"])
	assert.Equal(t, float64(40), (*args)["end_y"])

	_, err = ui.Click(ctx, 5, 6, "")
	require.NoError(t, err)
	assert.Equal(t, MouseButtonLeft, (*args)["button"])

	_, err = ui.Click(ctx, 5, 6, "side")
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestScreenshot(t *testing.T) {
	mock, _, name := recordingMock(t, "https://oss/screenshot.png")
	s := newTestSession(mock)
	for _, shot := range []func(context.Context) (*ScreenshotResult, error){s.UI().Screenshot, s.Mobile().Screenshot, s.Computer().Screenshot} {
		result, err := shot(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "https://oss/screenshot.png", result.URL)
		assert.Equal(t, mcptools.SystemScreenshot, *name)
	}
}

func TestMobileApps(t *testing.T) {
	mock, args, name := recordingMock(t, `[{"name":"Settings","start_cmd":"com.android.settings"}]`)
	m := newTestSession(mock).Mobile()
	ctx := context.Background()

	apps, err := m.GetInstalledApps(ctx, true, false, true)
	require.NoError(t, err)
	require.Len(t, apps.Apps, 1)
	assert.Equal(t, "com.android.settings", apps.Apps[0].StartCmd)
	assert.Equal(t, true, (*args)["ignore_system_apps"])

	_, err = m.StartApp(ctx, "", "", "")
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	_, err = m.StopAppByCmd(ctx, "")
	assert.True(t, errors.Is(err, ErrInvalidParameter))

	_, err = m.Tap(ctx, 100, 200)
	require.NoError(t, err)
	assert.Equal(t, mcptools.Tap, *name)
}

func TestMobileStartApp(t *testing.T) {
	mock, args, _ := recordingMock(t, `[{"pname":"settings","pid":1234}]`)
	result, err := newTestSession(mock).Mobile().StartApp(context.Background(), "monkey -p com.android.settings", "", ".Settings")
	require.NoError(t, err)
	require.Len(t, result.Processes, 1)
	assert.Equal(t, 1234, result.Processes[0].PID)
	assert.Equal(t, ".Settings", (*args)["activity"])
	assert.NotContains(t, *args, "work_directory")
}

func TestMobileADBURL(t *testing.T) {
	mock := &mockAPI{
		getAdbLinkFn: func(ctx context.Context, body *apis.GetAdbLinkRequest) (*apis.GetAdbLinkResponse, error) {
			assert.JSONEq(t, `{"adbkey_pub":"pubkey"}`, body.Option)
			return okResponse("req-adb", apis.URLData{URL: "adb connect 1.2.3.4:5555"}), nil
		},
	}
	m := newTestSession(mock).Mobile()
	result, err := m.GetADBURL(context.Background(), "pubkey")
	require.NoError(t, err)
	assert.Equal(t, "adb connect 1.2.3.4:5555", result.URL)

	_, err = m.GetADBURL(context.Background(), "")
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}

func TestComputerMouseAndKeys(t *testing.T) {
	mock, args, name := recordingMock(t, "")
	c := newTestSession(mock).Computer()
	ctx := context.Background()

	_, err := c.DragMouse(ctx, 1, 2, 3, 4, "")
	require.NoError(t, err)
	assert.Equal(t, mcptools.DragMouse, *name)
	assert.Equal(t, float64(3), (*args)["to_x"])
	_, err = c.DragMouse(ctx, 1, 2, 3, 4, "double_left")
	assert.True(t, errors.Is(err, ErrInvalidParameter))

	_, err = c.Scroll(ctx, 0, 0, ScrollDown, 0)
	require.NoError(t, err)
	assert.Equal(t, float64(1), (*args)["amount"])
	_, err = c.Scroll(ctx, 0, 0, "diagonal", 1)
	assert.True(t, errors.Is(err, ErrInvalidParameter))

	_, err = c.PressKeys(ctx, []string{"Ctrl", "c"}, true)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"Ctrl", "c"}, (*args)["keys"])
	_, err = c.ReleaseKeys(ctx, nil)
	assert.True(t, errors.Is(err, ErrInvalidParameter))

	_, err = c.ResizeWindow(ctx, 7, 0, 100)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	_, err = c.MaximizeWindow(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, mcptools.MaximizeWindow, *name)
	assert.Equal(t, float64(7), (*args)["window_id"])
}

func TestComputerQueries(t *testing.T) {
	mock := &mockAPI{
		callMcpToolFn: func(ctx context.Context, body *apis.CallMcpToolRequest) (*apis.CallMcpToolResponse, error) {
			outputs := map[string]string{
				mcptools.GetCursorPosition: `{"x":10,"y":20}`,
				mcptools.GetScreenSize:     `{"width":1920,"height":1080,"dpiScalingFactor":1.5}`,
				mcptools.ListRootWindows:   `[{"window_id":1,"title":"Terminal","child_windows":[{"window_id":2,"title":"Tab"}]}]`,
				mcptools.GetActiveWindow:   `{"window_id":1,"title":"Terminal","pid":99}`,
			}
			return okResponse("req-"+body.Name, toolData(outputs[body.Name], false)), nil
		},
	}
	c := newTestSession(mock).Computer()
	ctx := context.Background()

	cursor, err := c.GetCursorPosition(ctx)
	require.NoError(t, err)
	assert.Equal(t, CursorPosition{X: 10, Y: 20}, cursor.Position)

	size, err := c.GetScreenSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1.5, size.Size.DPIScalingFactor)

	windows, err := c.ListRootWindows(ctx, 0)
	require.NoError(t, err)
	require.Len(t, windows.Windows, 1)
	assert.Equal(t, "Tab", windows.Windows[0].ChildNodes[0].Title)

	active, err := c.GetActiveWindow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 99, active.Window.PID)
}

func TestOSS(t *testing.T) {
	mock, args, name := recordingMock(t, "uploaded")
	oss := newTestSession(mock).OSS()
	ctx := context.Background()

	_, err := oss.EnvInit(ctx, &OSSCredentials{AccessKeyID: "ak"})
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	_, err = oss.EnvInit(ctx, nil)
	assert.True(t, errors.Is(err, ErrInvalidParameter))

	_, err = oss.EnvInit(ctx, &OSSCredentials{AccessKeyID: "ak", AccessKeySecret: "sk", Region: "cn-hangzhou"})
	require.NoError(t, err)
	assert.Equal(t, mcptools.OssEnvInit, *name)
	assert.Equal(t, "cn-hangzhou", (*args)["region"])
	assert.NotContains(t, *args, "endpoint")

	result, err := oss.Upload(ctx, "bucket", "key", "/tmp/file")
	require.NoError(t, err)
	assert.Equal(t, "uploaded", result.Output)
	assert.Equal(t, mcptools.OssUpload, *name)

	_, err = oss.DownloadAnonymous(ctx, "", "/tmp/file")
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	_, err = oss.UploadAnonymous(ctx, "https://signed", "/tmp/file")
	require.NoError(t, err)
	assert.Equal(t, mcptools.OssUploadAnnon, *name)
}
