package aws_handler

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
)

type AWSHandler struct {
	SecretManager *SecretManager
}

func NewAWSHandler(region string) (*AWSHandler, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region)},
	)
	if err != nil {
		return nil, err
	}

	svc := secretsmanager.New(sess)

	return &AWSHandler{
		SecretManager: NewSecretManager(svc),
	}, nil
}

type SecretManager struct {
	svc *secretsmanager.SecretsManager
}

func NewSecretManager(svc *secretsmanager.SecretsManager) *SecretManager {
	return &SecretManager{svc: svc}
}

// GetSecretValue fetches a secret string, e.g. the stock quote API key.
func (s *SecretManager) GetSecretValue(secretId string) (string, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretId),
	}

	result, err := s.svc.GetSecretValue(input)
	if err != nil {
		return "", err
	}

	return *result.SecretString, nil
}
