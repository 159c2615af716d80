package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/imroc/req"
	"github.com/schollz/progressbar/v3"
)

// Command line flags
var (
	server         string
	token          string
	action         string
	file           string
	updatesKey     string
	platform       string
	runtimeVersion string
	timestamp      string
)

func init() {
	flag.StringVar(&server, "server", "http://localhost:7290", "Update service base URL")
	flag.StringVar(&token, "token", "", "Admin bearer token")
	flag.StringVar(&action, "action", "upload", "Action: upload/rollback-embedded/rollback-previous/init-token")
	flag.StringVar(&file, "file", "", "Bundle zip file to upload")
	flag.StringVar(&updatesKey, "updates-key", "", "Updates key of the channel")
	flag.StringVar(&platform, "platform", "", "Platform: ios/android")
	flag.StringVar(&runtimeVersion, "runtime-version", "", "Runtime version of the channel")
	flag.StringVar(&timestamp, "timestamp", "", "Bundle timestamp in milliseconds (default: now)")
}

// apiResponse service response envelope
type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func main() {
	flag.Parse()
	req.SetTimeout(5 * time.Minute)

	var err error
	switch action {
	case "upload":
		err = uploadBundle()
	case "rollback-embedded":
		err = rollback("embedded")
	case "rollback-previous":
		err = rollback("previous")
	case "init-token":
		err = initToken()
	default:
		err = fmt.Errorf("unknown action: %s", action)
	}
	if err != nil {
		log.Fatalf("Failed: %v", err)
	}
}

// requireChannelFlags validate the flags every channel operation needs
func requireChannelFlags() error {
	if updatesKey == "" || platform == "" || runtimeVersion == "" {
		return fmt.Errorf("missing required flags: -updates-key, -platform, -runtime-version")
	}
	if platform != "ios" && platform != "android" {
		return fmt.Errorf("unsupported platform: %s", platform)
	}
	return nil
}

// uploadBundle upload a bundle zip with a progress bar
func uploadBundle() error {
	if err := requireChannelFlags(); err != nil {
		return err
	}
	if file == "" {
		return fmt.Errorf("missing required flag: -file")
	}
	if timestamp == "" {
		timestamp = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open bundle file: %w", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat bundle file: %w", err)
	}

	// Progress bar fed through a tee while req streams the file
	bar := progressbar.NewOptions64(
		info.Size(),
		progressbar.OptionSetDescription("Uploading bundle"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowBytes(true),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
	)
	reader := io.NopCloser(io.TeeReader(f, bar))

	resp, err := req.Post(server+"/api/upload",
		req.Header{"Authorization": "Bearer " + token},
		req.Param{
			"updatesKey":      updatesKey,
			"platform":        platform,
			"runtimeVersion":  runtimeVersion,
			"bundleTimestamp": timestamp,
		},
		req.FileUpload{
			FieldName: "file",
			FileName:  filepath.Base(file),
			File:      reader,
		},
	)
	fmt.Println()
	if err != nil {
		return fmt.Errorf("upload request failed: %w", err)
	}
	return report(resp)
}

// rollback issue a rollback of the given type
func rollback(rollbackType string) error {
	if err := requireChannelFlags(); err != nil {
		return err
	}

	resp, err := req.Post(server+"/api/rollback",
		req.Header{"Authorization": "Bearer " + token},
		req.BodyJSON(map[string]string{
			"rollbackType":   rollbackType,
			"updatesKey":     updatesKey,
			"platform":       platform,
			"runtimeVersion": runtimeVersion,
		}),
	)
	if err != nil {
		return fmt.Errorf("rollback request failed: %w", err)
	}
	return report(resp)
}

// initToken generate the admin token on a fresh deployment
func initToken() error {
	resp, err := req.Post(server + "/api/auth/init")
	if err != nil {
		return fmt.Errorf("init request failed: %w", err)
	}
	return report(resp)
}

// report print the service response and fail on non-2xx status
func report(resp *req.Resp) error {
	var body apiResponse
	if err := resp.ToJSON(&body); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	status := resp.Response().StatusCode
	if status >= 300 {
		return fmt.Errorf("server returned %d: %s", status, body.Message)
	}
	fmt.Printf("%s\n", body.Message)
	if len(body.Data) > 0 && string(body.Data) != "null" {
		fmt.Printf("%s\n", body.Data)
	}
	return nil
}
