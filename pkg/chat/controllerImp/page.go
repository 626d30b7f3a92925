package controllerImp

const chatHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Document Chat</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 0;
            display: flex;
            flex-direction: column;
            align-items: center;
            background-color: #f4f4f9;
            color: #333;
        }
        h1 { margin-top: 20px; color: #444; }
        form { margin: 20px 0; display: flex; }
        input[type="text"] {
            width: 300px;
            padding: 10px;
            border: 1px solid #ccc;
            border-radius: 4px;
            margin-right: 10px;
        }
        button {
            padding: 10px 20px;
            border: none;
            border-radius: 4px;
            background-color: #5cb85c;
            color: white;
            font-size: 16px;
            cursor: pointer;
        }
        button:hover { background-color: #4cae4c; }
        ul { list-style: none; padding: 0; width: 80%; max-width: 600px; margin: 0 auto; }
        li {
            background-color: #fff;
            padding: 10px;
            margin: 10px 0;
            border: 1px solid #ddd;
            border-radius: 4px;
            word-wrap: break-word;
        }
    </style>
</head>
<body>
    <h1>Document Chat</h1>
    <form action="" onsubmit="sendMessage(event)">
        <input type="text" id="messageText" placeholder="Type your question..." autocomplete="off" />
        <button type="submit">Send</button>
    </form>
    <ul id="messages"></ul>
    <script>
        const proto = location.protocol === "https:" ? "wss" : "ws";
        const ws = new WebSocket(proto + "://" + location.host + "/ws/{DOC_ID}");

        ws.onmessage = function (event) {
            const messages = document.getElementById("messages");
            const message = document.createElement("li");
            message.appendChild(document.createTextNode(event.data));
            messages.appendChild(message);
        };

        function sendMessage(event) {
            event.preventDefault();
            const input = document.getElementById("messageText");
            ws.send(JSON.stringify({
                document_id: {DOC_ID},
                question: input.value,
            }));
            input.value = "";
        }
    </script>
</body>
</html>
`
