package db

import (
	"errors"
	"strconv"

	"github.com/salwon/segyio/model"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

const tableName = "segyio-metadata"

// GetSurveyMetadatas fetches acquisition metadata for indexed segy files,
// keyed by filename. BatchGetItem caps out at 10 keys per request.
func GetSurveyMetadatas(filenames []string) (map[string]model.SurveyMetadata, error) {
	res := make(map[string]model.SurveyMetadata)

	if len(filenames) == 0 {
		return res, nil
	}
	if len(filenames) > 10 {
		return nil, errors.New("not supposed to pass in more than 10 filenames")
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, filename := range filenames {
		key := make(map[string]*dynamodb.AttributeValue)
		key["PK"] = &dynamodb.AttributeValue{
			S: aws.String(filename),
		}
		keys = append(keys, key)
	}

	endpoint := "http://localhost:8000"
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, err
	}

	client := dynamodb.New(sess)
	input := &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			tableName: {Keys: keys},
		},
	}
	dbres, err := client.BatchGetItem(input)
	if err != nil {
		return nil, err
	}

	for _, v := range dbres.Responses[tableName] {
		var s model.SurveyMetadata
		if v["Year"] != nil && v["Year"].N != nil {
			year, _ := strconv.ParseUint(*v["Year"].N, 10, 32)
			s.Year = uint(year)
		}
		if v["Area"] != nil && v["Area"].S != nil {
			s.Area = *v["Area"].S
		}
		if v["Crew"] != nil && v["Crew"].S != nil {
			s.Crew = *v["Crew"].S
		}
		res[*v["PK"].S] = s
	}

	return res, nil
}
