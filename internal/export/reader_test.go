package export

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeExport writes body wrapped in the HealthData envelope and returns
// the file path.
func writeExport(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.xml")
	doc := `<?xml version="1.0" encoding="UTF-8"?>` + "\n<HealthData locale=\"en_US\">\n" + body + "\n</HealthData>\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

// readAll drains the reader and returns the yielded tags.
func readAll(t *testing.T, r *Reader) []string {
	t.Helper()
	var tags []string
	for {
		entry, err := r.Next()
		if err == io.EOF {
			return tags
		}
		require.NoError(t, err)
		tags = append(tags, entry.Tag)
	}
}

func TestReader_DocumentOrder(t *testing.T) {
	path := writeExport(t, `
 <ExportDate value="2024-02-01 10:00:00 -0500"/>
 <Me HKCharacteristicTypeIdentifierBiologicalSex="HKBiologicalSexNotSet"/>
 <Record type="HKQuantityTypeIdentifierStepCount" value="120" startDate="2024-01-01 08:00:00 -0500" endDate="2024-01-01 08:01:00 -0500"/>
 <Workout workoutActivityType="HKWorkoutActivityTypeRunning" startDate="2024-01-02 07:00:00 -0500" endDate="2024-01-02 07:30:00 -0500"/>
 <ActivitySummary dateComponents="2024-01-03"/>`)

	r, err := OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	tags := readAll(t, r)
	assert.Equal(t, []string{
		"HealthData", "ExportDate", "Me", "Record", "Workout", "ActivitySummary",
	}, tags)
}

func TestReader_AttributesPreserved(t *testing.T) {
	path := writeExport(t,
		` <Record type="HKQuantityTypeIdentifierHeartRate" unit="count/min" value="62" startDate="2024-01-01 08:00:00 -0500" endDate="2024-01-01 08:00:00 -0500"/>`)

	r, err := OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next() // HealthData
	require.NoError(t, err)

	entry, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "Record", entry.Tag)
	assert.Equal(t, "count/min", entry.Attrs["unit"])
	assert.Equal(t, "2024-01-01 08:00:00 -0500", entry.Attrs["startDate"])

	_, ok := entry.Attrs["sourceName"]
	assert.False(t, ok, "absent attribute must not appear in the bag")
}

func TestReader_SkipsFamilyChildren(t *testing.T) {
	// MetadataEntry and WorkoutEvent are children of matched elements and
	// must be consumed, not yielded as entries.
	path := writeExport(t, `
 <Record type="HKQuantityTypeIdentifierStepCount" value="120" startDate="2024-01-01 08:00:00 -0500" endDate="2024-01-01 08:01:00 -0500">
  <MetadataEntry key="HKMetadataKeySyncVersion" value="2"/>
 </Record>
 <Workout workoutActivityType="HKWorkoutActivityTypeRunning" startDate="2024-01-02 07:00:00 -0500" endDate="2024-01-02 07:30:00 -0500">
  <WorkoutEvent type="HKWorkoutEventTypePause" date="2024-01-02 07:10:00 -0500"/>
  <WorkoutStatistics type="HKQuantityTypeIdentifierHeartRate" average="152"/>
 </Workout>`)

	r, err := OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	tags := readAll(t, r)
	assert.Equal(t, []string{"HealthData", "Record", "Workout"}, tags)
}

func TestReader_RecordsInsideCorrelation(t *testing.T) {
	// Correlation is unrecognized, so its nested Records stay visible.
	path := writeExport(t, `
 <Correlation type="HKCorrelationTypeIdentifierBloodPressure" startDate="2024-01-01 08:00:00 -0500" endDate="2024-01-01 08:00:00 -0500">
  <Record type="HKQuantityTypeIdentifierBloodPressureSystolic" value="118" startDate="2024-01-01 08:00:00 -0500" endDate="2024-01-01 08:00:00 -0500"/>
  <Record type="HKQuantityTypeIdentifierBloodPressureDiastolic" value="76" startDate="2024-01-01 08:00:00 -0500" endDate="2024-01-01 08:00:00 -0500"/>
 </Correlation>`)

	r, err := OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	tags := readAll(t, r)
	assert.Equal(t, []string{"HealthData", "Correlation", "Record", "Record"}, tags)
}

func TestReader_TruncatedInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xml")
	truncated := `<?xml version="1.0"?>` + "\n" +
		`<HealthData><Record type="HKQuantityTypeIdentifierStepCount" value="120" start`
	require.NoError(t, os.WriteFile(path, []byte(truncated), 0o644))

	r, err := OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	for {
		_, err = r.Next()
		if err != nil {
			break
		}
	}

	var malformed *MalformedInputError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, path, malformed.Path)
}

func TestReader_MissingFile(t *testing.T) {
	_, err := OpenReader(filepath.Join(t.TempDir(), "nope.xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.xml")
}
