package utils

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DownloadFile downloads a file from url to destPath.
// The body is written to a .tmp file and renamed into place so a partial
// fetch never looks like a finished download.
func DownloadFile(url, destPath string) error {
	client := &http.Client{
		Timeout: 30 * time.Minute,
	}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download: HTTP %d", resp.StatusCode)
	}

	if resp.ContentLength > 0 {
		PrintMessage("Downloading %s (%s)", url, FormatBytes(resp.ContentLength))
	} else {
		PrintMessage("Downloading %s", url)
	}

	tmpPath := destPath + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(file, resp.Body)
	file.Close()
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write file: %w", err)
	}
	PrintDebug("Fetched %s to %s", FormatBytes(written), tmpPath)

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}

// URLExists checks if a URL exists (returns HTTP 200) using a HEAD request.
func URLExists(url string) bool {
	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Head(url)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
