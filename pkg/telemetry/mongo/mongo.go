// SPDX-License-Identifier: MIT
// Copyright (c) 2019 Hadrien Chauvin

// Package mongo implements telemetry on top of MongoDB.  Importing it
// registers the "mongo" backend.
package mongo

import (
	"context"
	"github.com/hchauvin/sputnik/pkg/telemetry"
	"github.com/hchauvin/sputnik/pkg/version"
	"go.mongodb.org/mongo-driver/mongo"
	mongo_options "go.mongodb.org/mongo-driver/mongo/options"
	"reflect"
	"sync"
)

func init() {
	telemetry.RegisterBackend(telemetry.Backend{
		Protocol:  "mongo",
		NewClient: newClient,
	})
}

const logDomain = "telemetry.mongo"

type client struct {
	options *options
	client  *mongo.Client
	app     string
	wg      sync.WaitGroup
}

func newClient(connectionString string) (telemetry.Client, error) {
	options, err := parseConnectionString(connectionString)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), options.timeout)
	defer cancel()
	c, err := mongo.Connect(ctx, mongo_options.Client().
		ApplyURI(options.uri).
		SetAppName(version.Name))
	if err != nil {
		return nil, err
	}
	return &client{
		options: options,
		client:  c,
		app:     version.Name,
	}, nil
}

type telemetryDocument struct {
	App     string      `bson:"app"`
	Type    string      `bson:"type"`
	Payload interface{} `bson:"payload"`
}

// Send implements telemetry.Client.
func (mongo *client) Send(payload interface{}) {
	mongo.wg.Add(1)
	go func() {
		defer mongo.wg.Done()
		doc := telemetryDocument{
			App:     mongo.app,
			Type:    getType(payload),
			Payload: payload,
		}
		ctx, cancel := context.WithTimeout(context.Background(), mongo.options.timeout)
		defer cancel()
		_, err := mongo.collection().InsertOne(ctx, doc)
		if err != nil {
			telemetry.Logger().Debug(logDomain, "cannot send telemetry event: %v", err)
		}
	}()
}

// Close implements telemetry.Client.
func (mongo *client) Close() {
	mongo.wg.Wait()
	ctx, cancel := context.WithTimeout(context.Background(), mongo.options.timeout)
	defer cancel()
	if err := mongo.client.Disconnect(ctx); err != nil {
		telemetry.Logger().Debug(logDomain, "cannot disconnect: %v", err)
	}
}

func (mongo *client) collection() *mongo.Collection {
	return mongo.client.
		Database(mongo.options.database).
		Collection(mongo.options.collection)
}

func getType(myvar interface{}) string {
	t := reflect.TypeOf(myvar)
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Ptr {
		return t.Elem().Name()
	}
	return t.Name()
}
