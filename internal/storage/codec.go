package storage

import (
	"encoding/json"
	"errors"

	"geras/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

// Stamp sets the current schema and codec versions on a record.
func Stamp() model.VersionedRecord {
	return model.VersionedRecord{
		SchemaVersion: CurrentSchemaVersion,
		CodecVersion:  CurrentCodecVersion,
	}
}

func EncodeGenomeRecord(r model.GenomeRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeGenomeRecord(data []byte) (model.GenomeRecord, error) {
	var record model.GenomeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.GenomeRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.GenomeRecord{}, err
	}
	return record, nil
}

func EncodeRunRecord(r model.RunRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeRunRecord(data []byte) (model.RunRecord, error) {
	var record model.RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.RunRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.RunRecord{}, err
	}
	return record, nil
}

func EncodePredictionRecord(r model.PredictionRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodePredictionRecord(data []byte) (model.PredictionRecord, error) {
	var record model.PredictionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.PredictionRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.PredictionRecord{}, err
	}
	return record, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
